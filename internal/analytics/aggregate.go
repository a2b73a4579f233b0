// Package analytics derives dashboard statistics and paginated report views
// from stored analysis records.
package analytics

import (
	"time"

	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
)

// DefaultTrendDays is the length of the trend window when none is configured.
const DefaultTrendDays = 7

// Stats summarizes the stored records for the dashboard. Failed analyses
// are never stored, so every record contributes to exactly one verdict
// bucket.
type Stats struct {
	Total        int                       `json:"total"`
	HealthyCount int                       `json:"healthyCount"`
	BirdFluCount int                       `json:"birdFluCount"`
	Distribution map[diagnosis.Verdict]int `json:"distribution"`
	Trend        []TrendBucket             `json:"trend"`
}

// TrendBucket holds the per-day counts for the trend chart. Label is the
// calendar day in "2006-01-02" form.
type TrendBucket struct {
	Label   string `json:"label"`
	Healthy int    `json:"healthy"`
	BirdFlu int    `json:"birdFlu"`
}

// Window defines the trend aggregation window: the trailing Days calendar
// days ending at Now, in Now's location.
type Window struct {
	Now  time.Time
	Days int
}

// Aggregate computes dashboard statistics over the records. The trend is
// chronological and zero-filled, days without records still appear.
func Aggregate(records []datastore.Record, w Window) Stats {
	if w.Days <= 0 {
		w.Days = DefaultTrendDays
	}
	if w.Now.IsZero() {
		w.Now = time.Now()
	}

	stats := Stats{
		Distribution: make(map[diagnosis.Verdict]int),
		Trend:        make([]TrendBucket, w.Days),
	}

	// Oldest bucket first
	start := w.Now.AddDate(0, 0, -(w.Days - 1))
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, w.Now.Location())
	index := make(map[string]int, w.Days)
	for i := 0; i < w.Days; i++ {
		label := startDay.AddDate(0, 0, i).Format("2006-01-02")
		stats.Trend[i].Label = label
		index[label] = i
	}

	for i := range records {
		record := &records[i]
		if !record.Verdict.Actionable() {
			continue
		}

		stats.Total++
		stats.Distribution[record.Verdict]++
		switch record.Verdict {
		case diagnosis.Healthy:
			stats.HealthyCount++
		case diagnosis.SuspectedBirdFlu:
			stats.BirdFluCount++
		}

		day := record.CreatedAt.In(w.Now.Location()).Format("2006-01-02")
		bucket, ok := index[day]
		if !ok {
			continue
		}
		switch record.Verdict {
		case diagnosis.Healthy:
			stats.Trend[bucket].Healthy++
		case diagnosis.SuspectedBirdFlu:
			stats.Trend[bucket].BirdFlu++
		}
	}

	return stats
}
