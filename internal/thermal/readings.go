// Package thermal defines the normalized per-bird temperature readings that
// feed the health classifier. Readings come from an external thermal imaging
// pipeline; any of them may be missing for a given bird.
package thermal

import (
	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// bodySpreadFallback is applied around BodyMean when the imaging pipeline
// only reports a mean body temperature.
const bodySpreadFallback = 0.5

// ReadingSet holds the temperature readings extracted for one bird.
// All values are in °C; nil means the reading was not available.
type ReadingSet struct {
	Head       *float64 // hottest point of the head region
	BodyMean   *float64 // mean body temperature
	BodyMin    *float64 // coldest point of the body region
	BodyMax    *float64 // hottest point of the body region
	Leg        *float64 // mean leg temperature, often absent
	Confidence *float64 // detector confidence in [0,1]
}

// Float returns a pointer to v. Convenience for building reading sets.
func Float(v float64) *float64 {
	return &v
}

// Normalized returns a copy of the reading set with BodyMin and BodyMax
// defaulted to BodyMean ∓ 0.5 °C when only the mean is available.
func (rs ReadingSet) Normalized() ReadingSet {
	out := rs
	if rs.BodyMean != nil {
		if rs.BodyMin == nil {
			out.BodyMin = Float(*rs.BodyMean - bodySpreadFallback)
		}
		if rs.BodyMax == nil {
			out.BodyMax = Float(*rs.BodyMean + bodySpreadFallback)
		}
	}
	return out
}

// Validate checks the internal consistency of the readings. It returns a
// validation error when bodyMin ≤ bodyMean ≤ bodyMax is violated or the
// confidence is outside [0,1]. Missing readings are always valid.
func (rs ReadingSet) Validate() error {
	if rs.BodyMin != nil && rs.BodyMax != nil && *rs.BodyMin > *rs.BodyMax {
		return errors.Newf("bodyMin %.2f exceeds bodyMax %.2f", *rs.BodyMin, *rs.BodyMax).
			Component("thermal").
			Category(errors.CategoryValidation).
			Context("bodyMin", *rs.BodyMin).
			Context("bodyMax", *rs.BodyMax).
			Build()
	}
	if rs.BodyMean != nil {
		if rs.BodyMin != nil && *rs.BodyMin > *rs.BodyMean {
			return errors.Newf("bodyMin %.2f exceeds bodyMean %.2f", *rs.BodyMin, *rs.BodyMean).
				Component("thermal").
				Category(errors.CategoryValidation).
				Build()
		}
		if rs.BodyMax != nil && *rs.BodyMean > *rs.BodyMax {
			return errors.Newf("bodyMean %.2f exceeds bodyMax %.2f", *rs.BodyMean, *rs.BodyMax).
				Component("thermal").
				Category(errors.CategoryValidation).
				Build()
		}
	}
	if rs.Confidence != nil && (*rs.Confidence < 0 || *rs.Confidence > 1) {
		return errors.Newf("confidence %.3f outside [0,1]", *rs.Confidence).
			Component("thermal").
			Category(errors.CategoryValidation).
			Context("confidence", *rs.Confidence).
			Build()
	}
	return nil
}

// HasCoreReading reports whether at least one of head or body mean is present.
// Without either no verdict other than DetectionFailed is possible.
func (rs ReadingSet) HasCoreReading() bool {
	return rs.Head != nil || rs.BodyMean != nil
}

// BodySpread returns BodyMax − BodyMin when both are present.
func (rs ReadingSet) BodySpread() (float64, bool) {
	if rs.BodyMin == nil || rs.BodyMax == nil {
		return 0, false
	}
	return *rs.BodyMax - *rs.BodyMin, true
}
