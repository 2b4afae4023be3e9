package ccgsrl

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the parameters of a parsing run. A Config is a value: it is
// handed to chart construction, extraction and re-ranking by copy and is never
// changed after a run has started. The beam relaxation loop derives modified
// copies with WithBeam.
type Config struct {
	BeamRatio          float64  `yaml:"beam-ratio"`           // keep tag iff p ≥ β·p(best)
	BeamCutoff         float64  `yaml:"beam-cutoff"`          // stop relaxing once 2β reaches this
	MaxChartSize       int      `yaml:"max-chart-size"`       // global budget of chart entries
	MaxTagsPerWord     int      `yaml:"max-tags-per-word"`    // 0 = unlimited
	NBest              int      `yaml:"nbest"`                // K
	RootCategories     []string `yaml:"root-categories"`      // permitted sentence roots
	UnaryRules         []string `yaml:"unary-rules"`          // "from  to" pairs; nil = defaults
	TypeRaising        bool     `yaml:"type-raising"`         // add type-raising unary rules
	AttachLowPenalty   float64  `yaml:"attach-low-penalty"`   // per word of dependency length
	UnaryPenalty       float64  `yaml:"unary-penalty"`        // per unary rule application
	Workers            int      `yaml:"workers"`              // sentences parsed concurrently
	SupertagCacheBytes int      `yaml:"supertag-cache-bytes"` // fastcache capacity
}

// DefaultRootCategories are the permitted sentence roots if none are configured:
// declaratives, wh-questions, yes/no-questions, bare infinitivals and NPs.
var DefaultRootCategories = []string{`S[dcl]`, `S[wq]`, `S[q]`, `S[b]\NP`, `NP`}

// DefaultConfig returns the parameters used if a client does not provide any.
func DefaultConfig() Config {
	return Config{
		BeamRatio:          0.0001,
		BeamCutoff:         0.1,
		MaxChartSize:       300000,
		MaxTagsPerWord:     50,
		NBest:              100,
		RootCategories:     append([]string(nil), DefaultRootCategories...),
		TypeRaising:        false,
		AttachLowPenalty:   0,
		UnaryPenalty:       0,
		Workers:            4,
		SupertagCacheBytes: 32 * 1024 * 1024,
	}
}

// LoadConfig reads a YAML configuration. Keys not present in the input keep
// their default values.
func LoadConfig(r io.Reader) (Config, error) {
	conf := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&conf); err != nil && err != io.EOF {
		return DefaultConfig(), errors.Wrap(err, "reading configuration")
	}
	if err := conf.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return conf, nil
}

// Validate checks a configuration for values which would make parsing impossible.
func (c Config) Validate() error {
	switch {
	case c.BeamRatio <= 0 || c.BeamRatio > 1:
		return errors.Errorf("beam ratio must be in (0,1], is %g", c.BeamRatio)
	case c.MaxChartSize <= 0:
		return errors.Errorf("max chart size must be positive, is %d", c.MaxChartSize)
	case c.NBest <= 0:
		return errors.Errorf("nbest must be positive, is %d", c.NBest)
	case len(c.RootCategories) == 0:
		return errors.New("no root categories configured")
	}
	return nil
}

// WithBeam returns a copy of c with a different supertagger beam.
func (c Config) WithBeam(beta float64) Config {
	c.RootCategories = append([]string(nil), c.RootCategories...)
	c.BeamRatio = beta
	return c
}

// WithNBest returns a copy of c with a different K.
func (c Config) WithNBest(k int) Config {
	c.RootCategories = append([]string(nil), c.RootCategories...)
	c.NBest = k
	return c
}
