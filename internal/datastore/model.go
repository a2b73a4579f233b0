package datastore

import (
	"time"

	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// Record represents one saved thermal health analysis. DetectionFailed
// analyses are never persisted, every stored record carries an actionable
// verdict.
type Record struct {
	// ID is a UUID assigned on save; opaque to clients.
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_records_created_at" json:"createdAt"`

	// ChickenLabel is a free-form identifier for the scanned bird.
	ChickenLabel string `gorm:"default:Unknown" json:"chickenLabel"`

	// Thermal readings in °C; nil marks a reading the camera did not yield.
	HeadTemp   *float64 `json:"head"`
	BodyMean   *float64 `json:"bodyMean"`
	BodyMin    *float64 `json:"bodyMin"`
	BodyMax    *float64 `json:"bodyMax"`
	LegTemp    *float64 `json:"leg"`
	Confidence *float64 `json:"confidence"`

	Verdict diagnosis.Verdict `gorm:"type:varchar(20);index:idx_records_verdict" json:"verdict"`

	// Explanation fields captured at classification time so reports stay
	// stable even if thresholds change later.
	ObservedSigns      JSONStrings `gorm:"type:text" json:"observedSigns"`
	Interpretation     string      `gorm:"type:text" json:"interpretation"`
	RecommendedActions JSONStrings `gorm:"type:text" json:"recommendedActions"`

	// Notes is operator-entered commentary, editable after the fact.
	Notes string `gorm:"type:text" json:"notes"`

	// Optional references to the captured thermal image and rendered heatmap.
	ImageRef   string `json:"imageRef,omitempty"`
	HeatmapRef string `json:"heatmapRef,omitempty"`
}

// Readings returns the record's temperature columns as a reading set.
func (r *Record) Readings() thermal.ReadingSet {
	return thermal.ReadingSet{
		Head:       r.HeadTemp,
		BodyMean:   r.BodyMean,
		BodyMin:    r.BodyMin,
		BodyMax:    r.BodyMax,
		Leg:        r.LegTemp,
		Confidence: r.Confidence,
	}
}
