// Package settings holds the composition pipeline configuration: the YAML
// file format, validation and the resolved form the pipeline runs on.
package settings

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/TAGKey/pkg/calculation"
	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/filter"
)

// Defaults
const (
	DefaultDDOF      = 1
	MassPrecision    = 1
	DefaultCacheSize = 64
)

// Group is one composition level with its filter threshold
type Group struct {
	Composition composition.Composition `yaml:"composition"`
	Filter      float64                 `yaml:"filter"`
}

// Settings is the user-facing configuration, as read from a file or flags
type Settings struct {
	Groups       []Group `yaml:"groups"`
	Method       string  `yaml:"method"`
	From         string  `yaml:"from"`
	Adduct       string  `yaml:"adduct"`
	ShowFiltered bool    `yaml:"show_filtered"`
	Sort         string  `yaml:"sort"`
	Order        string  `yaml:"order"`
	DDOF         int     `yaml:"ddof"`
}

// Default returns the settings used when nothing is configured
func Default() Settings {
	return Settings{
		Groups: []Group{{Composition: composition.NSC}},
		Method: calculation.Vanderwal.String(),
		From:   calculation.FromDAG1223.String(),
		Adduct: "None",
		Sort:   filter.SortByKey.String(),
		Order:  filter.Ascending.String(),
		DDOF:   DefaultDDOF,
	}
}

// Load reads settings from a YAML file. Fields absent from the file keep
// their defaults; unknown fields are an error.
func Load(path string) (Settings, error) {
	s := Default()

	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings as YAML
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Compositions returns the composition of every group in order
func (s Settings) Compositions() []composition.Composition {
	out := make([]composition.Composition, len(s.Groups))
	for i, g := range s.Groups {
		out[i] = g.Composition
	}
	return out
}

// Validate checks the settings without resolving adducts
func (s Settings) Validate() error {
	_, err := s.Resolve(nil)
	return err
}

// Resolve validates the settings and converts them to the typed form the
// pipeline runs on. A nil adduct database means the built-in one.
func (s Settings) Resolve(adducts *core.AdductDatabase) (*Config, error) {
	if adducts == nil {
		adducts = core.DefaultAdductDatabase()
	}

	groups := s.Compositions()
	if err := composition.ValidateGroups(groups); err != nil {
		return nil, err
	}

	thresholds := make([]float64, len(s.Groups))
	for i, g := range s.Groups {
		if g.Filter < 0 || math.IsNaN(g.Filter) || math.IsInf(g.Filter, 0) {
			return nil, fmt.Errorf("group %d: invalid filter threshold %v", i, g.Filter)
		}
		thresholds[i] = g.Filter
	}

	method, err := calculation.ParseMethod(s.Method)
	if err != nil {
		return nil, err
	}
	from, err := calculation.ParseFrom(s.From)
	if err != nil {
		return nil, err
	}
	adduct, err := adducts.Resolve(s.Adduct)
	if err != nil {
		return nil, err
	}
	sortBy, err := filter.ParseSortMode(s.Sort)
	if err != nil {
		return nil, err
	}
	order, err := filter.ParseOrder(s.Order)
	if err != nil {
		return nil, err
	}
	if s.DDOF < 0 || s.DDOF > compose.MaxDDOF {
		return nil, fmt.Errorf("ddof must be in [0, %d], got %d", compose.MaxDDOF, s.DDOF)
	}

	return &Config{
		Groups:      groups,
		Calculation: calculation.Options{Method: method, From: from},
		Key:         composition.KeyOptions{Adduct: adduct, Precision: MassPrecision},
		Filter: filter.Config{
			Thresholds:   thresholds,
			ShowFiltered: s.ShowFiltered,
			SortBy:       sortBy,
			Order:        order,
		},
		DDOF: s.DDOF,
	}, nil
}
