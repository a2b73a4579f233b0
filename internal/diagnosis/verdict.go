// Package diagnosis implements the deterministic health classification of
// thermal readings and the generation of verdict-consistent explanations.
package diagnosis

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// Verdict is the classification outcome assigned to one analysis.
// The set is closed; switches over it must be exhaustive.
type Verdict int

const (
	DetectionFailed Verdict = iota
	Healthy
	FeverOnly
	SuspectedBirdFlu
)

// verdictNames holds the stable wire representation of each verdict.
// These strings are part of the external contract and must not change.
var verdictNames = map[Verdict]string{
	DetectionFailed:  "Detection Failed",
	Healthy:          "Healthy",
	FeverOnly:        "Fever Only",
	SuspectedBirdFlu: "Suspected Bird Flu",
}

// Verdicts returns all verdicts in a fixed order.
func Verdicts() []Verdict {
	return []Verdict{DetectionFailed, Healthy, FeverOnly, SuspectedBirdFlu}
}

// String returns the wire representation of the verdict.
func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return verdictNames[DetectionFailed]
}

// Actionable reports whether records may be created for this verdict.
// DetectionFailed represents a failed analysis, not a health state.
func (v Verdict) Actionable() bool {
	switch v {
	case Healthy, FeverOnly, SuspectedBirdFlu:
		return true
	case DetectionFailed:
		return false
	}
	return false
}

// ParseVerdict converts a wire string back into a Verdict. Comparison is
// case-insensitive and tolerates underscores, so "fever_only" parses too.
func ParseVerdict(s string) (Verdict, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
	for v, name := range verdictNames {
		if strings.ToLower(name) == normalized {
			return v, nil
		}
	}
	return DetectionFailed, errors.Newf("unknown verdict %q", s).
		Component("diagnosis").
		Category(errors.CategoryValidation).
		Build()
}

// MarshalJSON encodes the verdict as its wire string.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a verdict from its wire string.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVerdict(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Value implements driver.Valuer so verdicts persist as their wire string.
func (v Verdict) Value() (driver.Value, error) {
	return v.String(), nil
}

// Scan implements sql.Scanner for reading verdicts back from the database.
func (v *Verdict) Scan(src any) error {
	switch s := src.(type) {
	case string:
		parsed, err := ParseVerdict(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	case []byte:
		parsed, err := ParseVerdict(string(s))
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	default:
		return errors.Newf("cannot scan %T into Verdict", src).
			Component("diagnosis").
			Category(errors.CategoryDatabase).
			Build()
	}
}

// Sign identifies one of the critical indicators evaluated by rule two of
// the classifier.
type Sign string

const (
	SignHighHeadTemp      Sign = "high_head_temp"
	SignIrregularBodyTemp Sign = "irregular_body_temp"
	SignLowLegTemp        Sign = "low_leg_temp"
)

// Label returns the human-readable form of the sign.
func (s Sign) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}
