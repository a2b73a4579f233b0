package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
)

func recordAt(verdict diagnosis.Verdict, at time.Time) datastore.Record {
	return datastore.Record{
		ChickenLabel: "test",
		Verdict:      verdict,
		CreatedAt:    at,
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	records := []datastore.Record{
		recordAt(diagnosis.Healthy, now),
		recordAt(diagnosis.Healthy, now.AddDate(0, 0, -1)),
		recordAt(diagnosis.SuspectedBirdFlu, now.AddDate(0, 0, -1)),
		recordAt(diagnosis.FeverOnly, now.AddDate(0, 0, -2)),
		// Outside the 7-day window, counted in totals but not the trend
		recordAt(diagnosis.Healthy, now.AddDate(0, 0, -10)),
	}

	stats := Aggregate(records, Window{Now: now, Days: 7})

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.HealthyCount)
	assert.Equal(t, 1, stats.BirdFluCount)
	assert.Equal(t, 3, stats.Distribution[diagnosis.Healthy])
	assert.Equal(t, 1, stats.Distribution[diagnosis.FeverOnly])
	assert.Equal(t, 1, stats.Distribution[diagnosis.SuspectedBirdFlu])

	require.Len(t, stats.Trend, 7)
	assert.Equal(t, "2026-08-25", stats.Trend[0].Label)
	assert.Equal(t, "2026-08-31", stats.Trend[6].Label)

	// Zero-filled days stay present
	assert.Zero(t, stats.Trend[0].Healthy)
	assert.Zero(t, stats.Trend[0].BirdFlu)

	assert.Equal(t, 1, stats.Trend[6].Healthy)
	assert.Equal(t, 1, stats.Trend[5].Healthy)
	assert.Equal(t, 1, stats.Trend[5].BirdFlu)
}

func TestAggregateDefaults(t *testing.T) {
	t.Parallel()

	stats := Aggregate(nil, Window{})
	assert.Zero(t, stats.Total)
	assert.Len(t, stats.Trend, DefaultTrendDays)
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	records := make([]datastore.Record, 0, 23)
	for i := 0; i < 23; i++ {
		verdict := diagnosis.Healthy
		if i%3 == 0 {
			verdict = diagnosis.SuspectedBirdFlu
		}
		r := recordAt(verdict, now.Add(-time.Duration(i)*time.Minute))
		r.ChickenLabel = fmt.Sprintf("bird-%d", i)
		records = append(records, r)
	}

	page := Paginate(records, nil, 1, 10)
	assert.Equal(t, 23, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "bird-0", page.Items[0].ChickenLabel)

	// Last page holds the remainder
	page = Paginate(records, nil, 3, 10)
	assert.Len(t, page.Items, 3)

	// Out-of-range pages clamp instead of erroring
	page = Paginate(records, nil, 10, 10)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Len(t, page.Items, 3)

	page = Paginate(records, nil, -1, 10)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestPaginateFilter(t *testing.T) {
	t.Parallel()

	now := time.Now()
	records := []datastore.Record{
		recordAt(diagnosis.Healthy, now),
		recordAt(diagnosis.SuspectedBirdFlu, now),
		recordAt(diagnosis.Healthy, now),
	}

	filter := diagnosis.SuspectedBirdFlu
	page := Paginate(records, &filter, 1, 10)
	assert.Equal(t, 1, page.TotalItems)
	require.Len(t, page.Items, 1)
	assert.Equal(t, diagnosis.SuspectedBirdFlu, page.Items[0].Verdict)
}

func TestPaginateEmpty(t *testing.T) {
	t.Parallel()

	page := Paginate(nil, nil, 5, 0)
	assert.Zero(t, page.TotalItems)
	assert.Zero(t, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Empty(t, page.Items)
}
