package confidence

import (
	"errors"
	"fmt"
)

// Level is a qualitative confidence label for a routed match.
type Level string

// Confidence levels, highest to lowest.
const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// ErrInvalidProfile is returned when profile parameters violate the
// ordering invariants. It is a configuration-time error: routers refuse
// to start with an invalid profile.
var ErrInvalidProfile = errors.New("invalid confidence profile")

// epsilon guards the calibration divisors against degenerate profiles
// whose thresholds collapse a band to zero width.
const epsilon = 1e-9

// Profile holds the numeric parameters mapping a raw combined score to
// a confidence label and a calibrated score. Profiles are validated at
// construction and immutable thereafter.
type Profile struct {
	HighThreshold   float64 `json:"high_threshold" env:"HIGH_THRESHOLD"`
	MediumThreshold float64 `json:"medium_threshold" env:"MEDIUM_THRESHOLD"`
	HighBase        float64 `json:"high_base" env:"HIGH_BASE"`
	HighScale       float64 `json:"high_scale" env:"HIGH_SCALE"`
	HighCap         float64 `json:"high_cap" env:"HIGH_CAP"`
	MediumBase      float64 `json:"medium_base" env:"MEDIUM_BASE"`
	MediumScale     float64 `json:"medium_scale" env:"MEDIUM_SCALE"`
	MediumCap       float64 `json:"medium_cap" env:"MEDIUM_CAP"`
	LowFloor        float64 `json:"low_floor" env:"LOW_FLOOR"`
}

// Validate checks the profile's range and ordering invariants.
func (p Profile) Validate() error {
	fields := map[string]float64{
		"high_threshold":   p.HighThreshold,
		"medium_threshold": p.MediumThreshold,
		"high_base":        p.HighBase,
		"high_scale":       p.HighScale,
		"high_cap":         p.HighCap,
		"medium_base":      p.MediumBase,
		"medium_scale":     p.MediumScale,
		"medium_cap":       p.MediumCap,
		"low_floor":        p.LowFloor,
	}
	for name, v := range fields {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %.3f out of [0,1]", ErrInvalidProfile, name, v)
		}
	}
	if p.HighThreshold < p.MediumThreshold {
		return fmt.Errorf("%w: high_threshold %.3f < medium_threshold %.3f",
			ErrInvalidProfile, p.HighThreshold, p.MediumThreshold)
	}
	if p.HighCap < p.HighBase {
		return fmt.Errorf("%w: high_cap %.3f < high_base %.3f",
			ErrInvalidProfile, p.HighCap, p.HighBase)
	}
	if p.MediumCap < p.MediumBase {
		return fmt.Errorf("%w: medium_cap %.3f < medium_base %.3f",
			ErrInvalidProfile, p.MediumCap, p.MediumBase)
	}
	return nil
}

// Calibrate maps a raw score through the profile's piecewise curve,
// returning the confidence label and the calibrated score.
func Calibrate(score float64, p Profile) (Level, float64) {
	switch {
	case score >= p.HighThreshold:
		span := 1 - p.HighThreshold
		if span < epsilon {
			span = epsilon
		}
		calibrated := p.HighBase + p.HighScale*(score-p.HighThreshold)/span
		if calibrated > p.HighCap {
			calibrated = p.HighCap
		}
		return High, calibrated

	case score >= p.MediumThreshold:
		span := p.HighThreshold - p.MediumThreshold
		if span < epsilon {
			span = epsilon
		}
		calibrated := p.MediumBase + p.MediumScale*(score-p.MediumThreshold)/span
		if calibrated > p.MediumCap {
			calibrated = p.MediumCap
		}
		return Medium, calibrated

	default:
		calibrated := score
		if calibrated < p.LowFloor {
			calibrated = p.LowFloor
		}
		return Low, calibrated
	}
}

// Presets returns the named default profiles. "precision" uses higher
// thresholds and narrower bands; "recall" lower thresholds and wider
// bands; "balanced" sits between them.
func Presets() map[string]Profile {
	return map[string]Profile{
		"balanced": {
			HighThreshold:   0.75,
			MediumThreshold: 0.50,
			HighBase:        0.85,
			HighScale:       0.15,
			HighCap:         1.0,
			MediumBase:      0.60,
			MediumScale:     0.20,
			MediumCap:       0.80,
			LowFloor:        0.10,
		},
		"precision": {
			HighThreshold:   0.85,
			MediumThreshold: 0.65,
			HighBase:        0.90,
			HighScale:       0.10,
			HighCap:         1.0,
			MediumBase:      0.65,
			MediumScale:     0.15,
			MediumCap:       0.80,
			LowFloor:        0.05,
		},
		"recall": {
			HighThreshold:   0.60,
			MediumThreshold: 0.35,
			HighBase:        0.80,
			HighScale:       0.20,
			HighCap:         1.0,
			MediumBase:      0.55,
			MediumScale:     0.25,
			MediumCap:       0.85,
			LowFloor:        0.20,
		},
	}
}
