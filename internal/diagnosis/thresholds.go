package diagnosis

import (
	"github.com/fluwatch/fluwatch-go/internal/conf"
)

// Thresholds holds the temperature boundaries used by the classifier and
// echoed by the explainer. All values are in °C except MinConfidence.
type Thresholds struct {
	MinConfidence      float64 // detections below this confidence fail, 0.0 disables the gate
	HeadCritical       float64 // head at or above this is a critical sign
	HeadFever          float64 // head above this indicates fever
	HeadHealthyMin     float64 // lower bound of the healthy head range
	BodyHealthyMin     float64 // lower bound of the healthy body range
	BodyHealthyMax     float64 // upper bound of the healthy body range
	BodySpreadCritical float64 // body spread above this is a critical sign
	LegCold            float64 // leg below this is a critical sign
}

// DefaultThresholds returns the thresholds established for broiler chickens.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinConfidence:      0.0,
		HeadCritical:       43.0,
		HeadFever:          42.5,
		HeadHealthyMin:     40.0,
		BodyHealthyMin:     37.5,
		BodyHealthyMax:     41.0,
		BodySpreadCritical: 6.0,
		LegCold:            38.0,
	}
}

// ThresholdsFromSettings builds thresholds from the detection settings,
// falling back to the defaults for any unset value.
func ThresholdsFromSettings(ds conf.DetectionSettings) Thresholds {
	th := DefaultThresholds()
	th.MinConfidence = ds.MinConfidence
	if ds.HeadCritical > 0 {
		th.HeadCritical = ds.HeadCritical
	}
	if ds.HeadFever > 0 {
		th.HeadFever = ds.HeadFever
	}
	if ds.HeadHealthyMin > 0 {
		th.HeadHealthyMin = ds.HeadHealthyMin
	}
	if ds.BodyHealthyMin > 0 {
		th.BodyHealthyMin = ds.BodyHealthyMin
	}
	if ds.BodyHealthyMax > 0 {
		th.BodyHealthyMax = ds.BodyHealthyMax
	}
	if ds.BodySpreadCritical > 0 {
		th.BodySpreadCritical = ds.BodySpreadCritical
	}
	if ds.LegCold > 0 {
		th.LegCold = ds.LegCold
	}
	return th
}
