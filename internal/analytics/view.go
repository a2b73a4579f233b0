package analytics

import (
	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
)

// DefaultPageSize is the report page size when none is requested.
const DefaultPageSize = 10

// Page is one page of report records together with pagination metadata.
type Page struct {
	Items       []datastore.Record `json:"items"`
	TotalItems  int                `json:"totalItems"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
}

// Paginate slices the records into a report page. Records are expected in
// most-recent-first order as returned by the datastore; the order is
// preserved. A nil filter includes every actionable verdict. The requested
// page is clamped to the valid range, and a non-positive pageSize falls
// back to DefaultPageSize.
func Paginate(records []datastore.Record, filter *diagnosis.Verdict, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := make([]datastore.Record, 0, len(records))
	for i := range records {
		record := &records[i]
		if !record.Verdict.Actionable() {
			continue
		}
		if filter != nil && record.Verdict != *filter {
			continue
		}
		filtered = append(filtered, *record)
	}

	totalItems := len(filtered)
	totalPages := (totalItems + pageSize - 1) / pageSize

	switch {
	case totalPages == 0:
		page = 1
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:       filtered[start:end],
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
