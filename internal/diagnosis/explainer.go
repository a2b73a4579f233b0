package diagnosis

import (
	"fmt"
	"strings"

	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// uniformSpreadLimit separates uniform from non-uniform body heat
// distribution in the fever explanation.
const uniformSpreadLimit = 1.0

// Explanation is the structured narrative attached to a verdict. It is
// derived solely from the verdict and the readings; rendering is left to
// the presentation layer.
type Explanation struct {
	ObservedSigns      []string `json:"observedSigns"`
	Interpretation     string   `json:"interpretation"`
	RecommendedActions []string `json:"recommendedActions"`
}

// strategy builds the explanation for one verdict. Keeping all verdicts in
// one table prevents the per-verdict render paths from drifting apart.
type strategy func(e *Engine, rs thermal.ReadingSet) Explanation

var strategies = map[Verdict]strategy{
	Healthy:          (*Engine).explainHealthy,
	FeverOnly:        (*Engine).explainFever,
	SuspectedBirdFlu: (*Engine).explainBirdFlu,
	DetectionFailed:  func(*Engine, thermal.ReadingSet) Explanation { return Explanation{} },
}

// Explain generates the explanation for a verdict. It is deterministic and
// total; missing readings render as "N/A". DetectionFailed and any verdict
// outside the closed set yield an empty explanation because no record may
// be created for them.
func (e *Engine) Explain(v Verdict, rs thermal.ReadingSet) Explanation {
	render, ok := strategies[v]
	if !ok {
		render = strategies[DetectionFailed]
	}
	return render(e, rs.Normalized())
}

func (e *Engine) explainHealthy(rs thermal.ReadingSet) Explanation {
	var signs []string

	if rs.Head != nil {
		annotation := fmt.Sprintf("Outside healthy range (%.1f–%.1f °C)", e.th.HeadHealthyMin, e.th.HeadFever)
		if *rs.Head >= e.th.HeadHealthyMin && *rs.Head <= e.th.HeadFever {
			annotation = fmt.Sprintf("Within healthy range (%.1f–%.1f °C)", e.th.HeadHealthyMin, e.th.HeadFever)
		}
		signs = append(signs, fmt.Sprintf("Head Temperature: %s — %s", fmtTemp(rs.Head), annotation))
	} else {
		signs = append(signs, "Head Temperature: N/A")
	}

	if rs.BodyMean != nil {
		annotation := "Outside stable range"
		if *rs.BodyMean >= e.th.BodyHealthyMin && *rs.BodyMean <= e.th.BodyHealthyMax {
			annotation = fmt.Sprintf("Stable average body heat (%.1f–%.1f °C)", e.th.BodyHealthyMin, e.th.BodyHealthyMax)
		}
		signs = append(signs, fmt.Sprintf("Body Temperature: %s — %s", fmtTemp(rs.BodyMean), annotation))
	} else {
		signs = append(signs, "Body Temperature: N/A")
	}

	if rs.Leg != nil {
		annotation := "Normal leg temperature"
		if *rs.Leg < e.th.LegCold {
			annotation = "Below normal"
		}
		signs = append(signs, fmt.Sprintf("Leg Temperature: %s — %s", fmtTemp(rs.Leg), annotation))
	} else {
		signs = append(signs, "Leg Temperature: N/A")
	}

	interpretation := fmt.Sprintf(
		"Thermal readings are within normal ranges for broiler chickens. "+
			"Head temperature is between %.1f–%.1f °C and body temperature is stable at %.1f–%.1f °C. "+
			"No signs of fever or irregular heat distribution detected. "+
			"The bird appears healthy with no indication of infection.",
		e.th.HeadHealthyMin, e.th.HeadFever, e.th.BodyHealthyMin, e.th.BodyHealthyMax)

	return Explanation{
		ObservedSigns:  signs,
		Interpretation: interpretation,
		RecommendedActions: []string{
			"Continue routine observation of the bird.",
			"Maintain proper nutrition and hydration.",
			"Ensure the housing area remains well-ventilated and clean.",
			"Re-scan periodically to confirm stable health status.",
		},
	}
}

func (e *Engine) explainFever(rs thermal.ReadingSet) Explanation {
	var signs []string

	if rs.Head != nil {
		annotation := "Normal"
		if *rs.Head > e.th.HeadFever {
			annotation = "Above normal"
		}
		signs = append(signs, fmt.Sprintf("Head Temperature: %s — %s", fmtTemp(rs.Head), annotation))
	} else {
		signs = append(signs, "Head Temperature: N/A")
	}

	signs = append(signs, fmt.Sprintf("Body Temperature: %s", fmtTemp(rs.BodyMean)))

	uniform := true
	if spread, ok := rs.BodySpread(); ok {
		annotation := "Uniform heat distribution"
		if spread >= uniformSpreadLimit {
			annotation = "Non-uniform heat distribution"
			uniform = false
		}
		signs = append(signs, fmt.Sprintf("Body Variation: %.1f °C — %s", spread, annotation))
	} else {
		signs = append(signs, "Body Variation: N/A")
	}

	if rs.Leg != nil {
		annotation := "Normal"
		if *rs.Leg < e.th.LegCold {
			annotation = "Below normal"
		}
		signs = append(signs, fmt.Sprintf("Leg Temperature: %s — %s", fmtTemp(rs.Leg), annotation))
	} else {
		signs = append(signs, "Leg Temperature: N/A")
	}

	distribution := "uniform"
	if !uniform {
		distribution = "non-uniform"
	}
	interpretation := fmt.Sprintf(
		"Head temperature is elevated with %s heat distribution across the body. "+
			"This suggests a systemic fever, possibly indicating early infection. "+
			"Monitor closely for changes in temperature patterns.", distribution)

	return Explanation{
		ObservedSigns:  signs,
		Interpretation: interpretation,
		RecommendedActions: []string{
			"Monitor the bird closely for any changes in temperature or behavior.",
			"Ensure proper ventilation and reduce stress factors.",
			"Consult a veterinarian if symptoms persist.",
		},
	}
}

func (e *Engine) explainBirdFlu(rs thermal.ReadingSet) Explanation {
	var signs []string

	if rs.Head != nil {
		var annotation string
		switch {
		case *rs.Head >= e.th.HeadCritical:
			annotation = fmt.Sprintf("Very high fever (≥%.1f °C)", e.th.HeadCritical)
		case *rs.Head > e.th.HeadFever:
			annotation = fmt.Sprintf("Above healthy range (%.1f–%.1f °C)", e.th.HeadHealthyMin, e.th.HeadFever)
		default:
			annotation = "Within healthy range"
		}
		signs = append(signs, fmt.Sprintf("Head Temperature: %s — %s", fmtTemp(rs.Head), annotation))
	} else {
		signs = append(signs, "Head Temperature: N/A")
	}

	switch {
	case rs.BodyMean != nil && rs.BodyMin != nil && rs.BodyMax != nil:
		spread := *rs.BodyMax - *rs.BodyMin
		annotation := "Stable heat distribution"
		if spread > e.th.BodySpreadCritical {
			annotation = fmt.Sprintf("Irregular heat distribution (%.1f °C variation)", spread)
		}
		signs = append(signs, fmt.Sprintf("Body Temperature: %s (min: %s, max: %s) — %s",
			fmtTemp(rs.BodyMean), fmtTemp(rs.BodyMin), fmtTemp(rs.BodyMax), annotation))
	case rs.BodyMean != nil:
		signs = append(signs, fmt.Sprintf("Body Temperature: %s", fmtTemp(rs.BodyMean)))
	default:
		signs = append(signs, "Body Temperature: N/A")
	}

	if rs.Leg != nil {
		annotation := "Normal"
		if *rs.Leg < e.th.LegCold {
			annotation = fmt.Sprintf("Below normal (<%.1f °C)", e.th.LegCold)
		}
		signs = append(signs, fmt.Sprintf("Leg Temperature: %s — %s", fmtTemp(rs.Leg), annotation))
	} else {
		signs = append(signs, "Leg Temperature: N/A")
	}

	critical := e.CriticalSigns(rs)
	if len(critical) > 0 {
		labels := make([]string, len(critical))
		for i, s := range critical {
			labels[i] = s.Label()
		}
		signs = append(signs, fmt.Sprintf("Critical signs detected: %s", strings.Join(labels, ", ")))
	}

	interpretation := fmt.Sprintf(
		"Critical avian influenza indicators detected: %s. "+
			"This combination strongly indicates avian influenza infection. "+
			"Immediate isolation and veterinary intervention required.",
		strings.Join(e.criticalFactors(critical), ", "))

	return Explanation{
		ObservedSigns:  signs,
		Interpretation: interpretation,
		RecommendedActions: []string{
			"IMMEDIATE ISOLATION: Separate the bird from the flock to prevent disease spread.",
			"VETERINARY EMERGENCY: Contact an avian veterinarian immediately for confirmatory testing.",
			"BIOSECURITY: Implement strict biosecurity measures for the entire facility.",
			"MORTALITY MONITORING: Track and report any additional bird deaths.",
			"SAMPLE COLLECTION: Prepare samples for laboratory testing (swabs, blood).",
		},
	}
}

// criticalFactors names the contributing factors for the bird flu
// interpretation, one entry per firing rule-two condition.
func (e *Engine) criticalFactors(signs []Sign) []string {
	factors := make([]string, 0, len(signs))
	for _, s := range signs {
		switch s {
		case SignHighHeadTemp:
			factors = append(factors, fmt.Sprintf("high head temperature (≥%.1f °C)", e.th.HeadCritical))
		case SignIrregularBodyTemp:
			factors = append(factors, fmt.Sprintf("irregular body temperature variation (>%.1f °C spread)", e.th.BodySpreadCritical))
		case SignLowLegTemp:
			factors = append(factors, fmt.Sprintf("low leg temperature (<%.1f °C)", e.th.LegCold))
		}
	}
	return factors
}

// fmtTemp renders a temperature reading, or "N/A" when it is missing.
// Rounding happens only here; the classifier compares raw floats.
func fmtTemp(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f °C", *v)
}
