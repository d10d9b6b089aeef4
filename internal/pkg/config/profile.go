package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the tunable defaults of the decision support engine.
// Loaded from the YAML file named by DSS_PROFILE_PATH; every field is optional.
//
//	fallback_preferred_location: [21.0285, 105.8542]
//	criterion_weights:
//	  price: 2
//	  distance_to_preferred_location: 1
type Profile struct {
	// FallbackPreferredLocation is used when a compare request carries no preferred location.
	FallbackPreferredLocation []float64 `yaml:"fallback_preferred_location"`

	// CriterionWeights replaces the uniform default when a request omits topsis_weight.
	// Criteria not listed get weight 0.
	CriterionWeights map[string]float64 `yaml:"criterion_weights"`
}

// LoadProfile reads a profile from disk. An empty path yields the zero profile.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		return &Profile{}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dss profile: %w", err)
	}

	return ParseProfile(b)
}

// ParseProfile decodes and validates a YAML profile
func ParseProfile(b []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode dss profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks value ranges
func (p *Profile) Validate() error {
	if n := len(p.FallbackPreferredLocation); n != 0 {
		if n != 2 {
			return fmt.Errorf("dss profile: fallback_preferred_location needs [latitude, longitude], got %d values", n)
		}
		lat, lon := p.FallbackPreferredLocation[0], p.FallbackPreferredLocation[1]
		if math.IsNaN(lat) || lat < -90 || lat > 90 || math.IsNaN(lon) || lon < -180 || lon > 180 {
			return fmt.Errorf("dss profile: fallback_preferred_location out of range: [%v, %v]", lat, lon)
		}
	}

	for name, w := range p.CriterionWeights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("dss profile: criterion weight %q must be a non-negative number, got %v", name, w)
		}
	}
	return nil
}
