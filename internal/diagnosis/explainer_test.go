package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

func TestExplainDeterministic(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	rs := thermal.ReadingSet{
		Head:     thermal.Float(43.5),
		BodyMean: thermal.Float(38.5),
		BodyMin:  thermal.Float(35.0),
		BodyMax:  thermal.Float(42.0),
		Leg:      thermal.Float(37.0),
	}

	first := engine.Explain(SuspectedBirdFlu, rs)
	second := engine.Explain(SuspectedBirdFlu, rs)
	assert.Equal(t, first, second)
}

func TestExplainHealthy(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	rs := thermal.ReadingSet{
		Head:     thermal.Float(41.0),
		BodyMean: thermal.Float(38.5),
		Leg:      thermal.Float(39.0),
	}

	exp := engine.Explain(Healthy, rs)
	require.Len(t, exp.ObservedSigns, 3)
	assert.Equal(t, "Head Temperature: 41.00 °C — Within healthy range (40.0–42.5 °C)", exp.ObservedSigns[0])
	assert.Equal(t, "Body Temperature: 38.50 °C — Stable average body heat (37.5–41.0 °C)", exp.ObservedSigns[1])
	assert.Equal(t, "Leg Temperature: 39.00 °C — Normal leg temperature", exp.ObservedSigns[2])
	assert.Contains(t, exp.Interpretation, "appears healthy")
	assert.Len(t, exp.RecommendedActions, 4)
}

func TestExplainHealthyMissingReadings(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	exp := engine.Explain(Healthy, thermal.ReadingSet{Head: thermal.Float(40.5)})

	require.Len(t, exp.ObservedSigns, 3)
	assert.Equal(t, "Body Temperature: N/A", exp.ObservedSigns[1])
	assert.Equal(t, "Leg Temperature: N/A", exp.ObservedSigns[2])
}

func TestExplainFever(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	rs := thermal.ReadingSet{
		Head:     thermal.Float(42.8),
		BodyMean: thermal.Float(39.0),
		BodyMin:  thermal.Float(38.8),
		BodyMax:  thermal.Float(39.2),
		Leg:      thermal.Float(39.0),
	}

	exp := engine.Explain(FeverOnly, rs)
	require.Len(t, exp.ObservedSigns, 4)
	assert.Equal(t, "Head Temperature: 42.80 °C — Above normal", exp.ObservedSigns[0])
	assert.Equal(t, "Body Temperature: 39.00 °C", exp.ObservedSigns[1])
	assert.Equal(t, "Body Variation: 0.4 °C — Uniform heat distribution", exp.ObservedSigns[2])
	assert.Contains(t, exp.Interpretation, "uniform heat distribution")
	assert.Len(t, exp.RecommendedActions, 3)
}

func TestExplainFeverNonUniform(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	rs := thermal.ReadingSet{
		Head:     thermal.Float(42.8),
		BodyMean: thermal.Float(39.0),
		BodyMin:  thermal.Float(37.0),
		BodyMax:  thermal.Float(41.0),
	}

	exp := engine.Explain(FeverOnly, rs)
	assert.Contains(t, exp.ObservedSigns[2], "Non-uniform heat distribution")
	assert.Contains(t, exp.Interpretation, "non-uniform heat distribution")
}

func TestExplainBirdFlu(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	rs := thermal.ReadingSet{
		Head:     thermal.Float(43.5),
		BodyMean: thermal.Float(38.5),
		BodyMin:  thermal.Float(35.0),
		BodyMax:  thermal.Float(42.0),
		Leg:      thermal.Float(37.0),
	}

	exp := engine.Explain(SuspectedBirdFlu, rs)
	require.Len(t, exp.ObservedSigns, 4)
	assert.Equal(t, "Head Temperature: 43.50 °C — Very high fever (≥43.0 °C)", exp.ObservedSigns[0])
	assert.Equal(t, "Body Temperature: 38.50 °C (min: 35.00 °C, max: 42.00 °C) — Irregular heat distribution (7.0 °C variation)", exp.ObservedSigns[1])
	assert.Equal(t, "Leg Temperature: 37.00 °C — Below normal (<38.0 °C)", exp.ObservedSigns[2])
	assert.Equal(t, "Critical signs detected: high head temp, irregular body temp, low leg temp", exp.ObservedSigns[3])

	assert.Contains(t, exp.Interpretation, "high head temperature (≥43.0 °C)")
	assert.Contains(t, exp.Interpretation, "irregular body temperature variation (>6.0 °C spread)")
	assert.Contains(t, exp.Interpretation, "low leg temperature (<38.0 °C)")

	require.Len(t, exp.RecommendedActions, 5)
	assert.Contains(t, exp.RecommendedActions[0], "IMMEDIATE ISOLATION")
	assert.Contains(t, exp.RecommendedActions[1], "VETERINARY EMERGENCY")
}

func TestExplainDetectionFailedIsEmpty(t *testing.T) {
	t.Parallel()

	engine := NewEngine(DefaultThresholds())
	exp := engine.Explain(DetectionFailed, thermal.ReadingSet{})
	assert.Empty(t, exp.ObservedSigns)
	assert.Empty(t, exp.Interpretation)
	assert.Empty(t, exp.RecommendedActions)
}

func TestExplainUnknownVerdict(t *testing.T) {
	t.Parallel()

	// A verdict outside the closed set must not panic and renders empty,
	// same as a failed detection.
	engine := NewEngine(DefaultThresholds())
	exp := engine.Explain(Verdict(99), thermal.ReadingSet{Head: thermal.Float(41.0)})
	assert.Empty(t, exp.ObservedSigns)
	assert.Empty(t, exp.Interpretation)
	assert.Empty(t, exp.RecommendedActions)
}
