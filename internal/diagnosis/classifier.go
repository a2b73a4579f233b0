package diagnosis

import (
	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// Engine classifies reading sets and explains the resulting verdicts.
// It is stateless apart from its thresholds and safe for concurrent use.
type Engine struct {
	th Thresholds
}

// NewEngine returns an engine using the given thresholds.
func NewEngine(th Thresholds) *Engine {
	return &Engine{th: th}
}

// Thresholds returns the thresholds the engine was built with.
func (e *Engine) Thresholds() Thresholds {
	return e.th
}

// Classify assigns a verdict to the readings. It is deterministic and total;
// readings that cannot be classified yield DetectionFailed, never an error.
// Rules are evaluated top to bottom, first match wins.
func (e *Engine) Classify(rs thermal.ReadingSet) Verdict {
	rs = rs.Normalized()

	// Rule 1: nothing to classify, or the detector itself was not confident.
	if !rs.HasCoreReading() {
		return DetectionFailed
	}
	if rs.Confidence != nil && *rs.Confidence < e.th.MinConfidence {
		return DetectionFailed
	}

	// Rule 2: at least two of the three critical signs must hold together.
	// A single sign is not enough, one noisy reading must not raise an alarm.
	if len(e.CriticalSigns(rs)) >= 2 {
		return SuspectedBirdFlu
	}

	// Rule 3: elevated head temperature without the critical majority.
	if rs.Head != nil && *rs.Head > e.th.HeadFever {
		return FeverOnly
	}

	// Rule 4: every present core reading sits inside its healthy range.
	if e.withinHealthyRanges(rs) {
		return Healthy
	}

	// Rule 5: readings are present but outside all named bounds. Policy
	// decision pending veterinary confirmation: ambiguous readings are
	// reported as failed analyses, never silently as Healthy.
	if rs.Head != nil && *rs.Head > e.th.HeadFever {
		return FeverOnly
	}
	return DetectionFailed
}

// CriticalSigns returns which of the three critical indicators hold for the
// readings, in a fixed order. Used by rule two and the explainer summary.
func (e *Engine) CriticalSigns(rs thermal.ReadingSet) []Sign {
	rs = rs.Normalized()

	var signs []Sign
	if rs.Head != nil && *rs.Head >= e.th.HeadCritical {
		signs = append(signs, SignHighHeadTemp)
	}
	if spread, ok := rs.BodySpread(); ok && spread > e.th.BodySpreadCritical {
		signs = append(signs, SignIrregularBodyTemp)
	}
	if rs.Leg != nil && *rs.Leg < e.th.LegCold {
		signs = append(signs, SignLowLegTemp)
	}
	return signs
}

// withinHealthyRanges reports whether all present core readings fall inside
// their healthy ranges, bounds inclusive. At least one core reading must be
// present; when only one of head and body is available that reading alone
// decides.
func (e *Engine) withinHealthyRanges(rs thermal.ReadingSet) bool {
	if !rs.HasCoreReading() {
		return false
	}
	if rs.Head != nil && (*rs.Head < e.th.HeadHealthyMin || *rs.Head > e.th.HeadFever) {
		return false
	}
	if rs.BodyMean != nil && (*rs.BodyMean < e.th.BodyHealthyMin || *rs.BodyMean > e.th.BodyHealthyMax) {
		return false
	}
	return true
}
