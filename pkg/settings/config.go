package settings

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/ChrisMcGann/TAGKey/pkg/calculation"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/filter"
)

// Config is the resolved, validated form of Settings
type Config struct {
	Groups      []composition.Composition
	Calculation calculation.Options
	Key         composition.KeyOptions
	Filter      filter.Config
	DDOF        int
}

// HashInto feeds every field that affects the pipeline result into d
func (c *Config) HashInto(d *xxhash.Digest) {
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		d.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write(buf[:])
	}

	putInt(len(c.Groups))
	for i, g := range c.Groups {
		putInt(int(g.Kind))
		putInt(int(g.Stereospecificity))
		threshold := 0.0
		if i < len(c.Filter.Thresholds) {
			threshold = c.Filter.Thresholds[i]
		}
		putFloat(threshold)
	}
	putInt(int(c.Calculation.Method))
	putInt(int(c.Calculation.From))
	putFloat(c.Key.Adduct)
	putInt(c.Key.Precision)
	if c.Filter.ShowFiltered {
		putInt(1)
	} else {
		putInt(0)
	}
	putInt(int(c.Filter.SortBy))
	putInt(int(c.Filter.Order))
	putInt(c.DDOF)
}

// Hash returns the fingerprint of the configuration alone
func (c *Config) Hash() uint64 {
	d := xxhash.New()
	c.HashInto(d)
	return d.Sum64()
}
