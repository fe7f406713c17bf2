// Package pipeline runs the composition pipeline and memoizes its results by
// input fingerprint.
//
// A run reconciles the samples, calculates TAG species, derives the
// composition levels, aggregates them across samples, filters, sorts and
// restructures the result. Either a complete result or an error is returned;
// errors are never cached.
package pipeline

import (
	"context"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/ChrisMcGann/TAGKey/pkg/cache"
	"github.com/ChrisMcGann/TAGKey/pkg/calculation"
	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
	"github.com/ChrisMcGann/TAGKey/pkg/settings"
)

// Pipeline computes composition results, at most once per fingerprint while
// the result stays cached.
type Pipeline struct {
	cache        cache.Cache
	group        singleflight.Group
	computations atomic.Int64
}

// New creates a pipeline backed by c. A nil cache disables memoization but
// still merges concurrent identical runs.
func New(c cache.Cache) *Pipeline {
	return &Pipeline{cache: c}
}

// Computations returns how many times the pipeline actually computed a result
func (p *Pipeline) Computations() int64 {
	return p.computations.Load()
}

// Run computes the composition result of the samples. A nil index aggregates
// all samples; otherwise only the selected sample is used.
func (p *Pipeline) Run(ctx context.Context, samples []*core.Sample, index *int, cfg *settings.Config) (*compose.Result, error) {
	fp := Fingerprint(samples, index, cfg)
	return p.memoize(ctx, fp, func() (*compose.Result, error) {
		return Compute(samples, index, cfg)
	})
}

// RunTAG computes the composition result of an already calculated TAG table
func (p *Pipeline) RunTAG(ctx context.Context, tags *calculation.TAGTable, cfg *settings.Config) (*compose.Result, error) {
	fp := TAGFingerprint(tags, cfg)
	return p.memoize(ctx, fp, func() (*compose.Result, error) {
		return ComputeTAG(tags, cfg)
	})
}

func (p *Pipeline) memoize(ctx context.Context, fp uint64, compute func() (*compose.Result, error)) (*compose.Result, error) {
	if p.cache != nil {
		if r, ok, err := p.cache.Get(ctx, fp); err != nil {
			return nil, err
		} else if ok {
			return r, nil
		}
	}

	v, err, _ := p.group.Do(strconv.FormatUint(fp, 16), func() (interface{}, error) {
		// A concurrent caller may have stored the result meanwhile
		if p.cache != nil {
			if r, ok, err := p.cache.Get(ctx, fp); err != nil {
				return nil, err
			} else if ok {
				return r, nil
			}
		}

		p.computations.Add(1)
		r, err := compute()
		if err != nil {
			return nil, err
		}

		if p.cache != nil {
			if err := p.cache.Put(ctx, fp, r); err != nil {
				return nil, err
			}
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*compose.Result), nil
}

// Compute runs the full pipeline without memoization
func Compute(samples []*core.Sample, index *int, cfg *settings.Config) (*compose.Result, error) {
	table, err := reconcile.Reconcile(samples, index)
	if err != nil {
		return nil, err
	}

	tags, err := calculation.Calculate(table, cfg.Calculation)
	if err != nil {
		return nil, err
	}

	return ComputeTAG(tags, cfg)
}

// ComputeTAG runs the pipeline from an existing TAG table, without memoization
func ComputeTAG(tags *calculation.TAGTable, cfg *settings.Config) (*compose.Result, error) {
	derived, err := compose.Derive(tags, cfg.Groups, cfg.Key)
	if err != nil {
		return nil, err
	}

	table, err := compose.Aggregate(derived, cfg.DDOF)
	if err != nil {
		return nil, err
	}

	f := cfg.Filter
	if err := f.Apply(table); err != nil {
		return nil, err
	}

	return compose.Restructure(table), nil
}
