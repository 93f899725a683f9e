// ABOUTME: Collector tuning profiles loadable from YAML
// ABOUTME: Maps a small config schema onto policies and promotion age

package gc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// ErrUnknownPolicy is returned when a tuning profile names a policy the
// collector does not provide.
var ErrUnknownPolicy = errors.New("unknown gc policy")

// Tuning is a declarative collector profile. Zero fields keep the built-in
// defaults.
type Tuning struct {
	Policy         string `yaml:"policy"` // "count" (default) or "time"
	YoungAllocs    int    `yaml:"young_allocs"`
	OldObjects     int    `yaml:"old_objects"`
	PeriodMs       int    `yaml:"period_ms"`
	AllocPressure  int    `yaml:"alloc_pressure"`
	FullEvery      int    `yaml:"full_every"`
	PromoteScanAge int    `yaml:"promote_scan_age"`
}

// LoadTuning reads a YAML tuning profile.
func LoadTuning(r io.Reader) (*Tuning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tuning profile: %w", err)
	}
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tuning profile: %w", err)
	}
	switch t.Policy {
	case "", "count", "time":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, t.Policy)
	}
	return &t, nil
}

// TuningFromFile reads a YAML tuning profile from disk.
func TuningFromFile(path string) (*Tuning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTuning(f)
}

// Apply installs the profile's policy and promotion age on c.
func (t *Tuning) Apply(c *Collector) error {
	switch t.Policy {
	case "", "count":
		p := NewCountPolicy()
		if t.YoungAllocs > 0 {
			p.YoungAllocs = t.YoungAllocs
		}
		if t.OldObjects > 0 {
			p.OldObjects = t.OldObjects
		}
		c.SetPolicy(p)
	case "time":
		p := NewTimePolicy()
		if t.PeriodMs > 0 {
			p.Period = time.Duration(t.PeriodMs) * time.Millisecond
		}
		if t.AllocPressure > 0 {
			p.AllocPressure = t.AllocPressure
		}
		if t.FullEvery > 0 {
			p.FullEvery = t.FullEvery
		}
		c.SetPolicy(p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, t.Policy)
	}
	if t.PromoteScanAge > 0 {
		c.SetPromoteAge(uint8(t.PromoteScanAge))
	}
	return nil
}
