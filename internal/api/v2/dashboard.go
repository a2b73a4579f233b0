package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fluwatch/fluwatch-go/internal/analytics"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
)

const statsCacheKey = "dashboard_stats"

// DashboardStats returns aggregated statistics for the dashboard. Results
// are cached briefly, the dashboard polls and exact freshness is not
// required.
func (c *Controller) DashboardStats(ctx echo.Context) error {
	if cached, found := c.statsCache.Get(statsCacheKey); found {
		return ctx.JSON(http.StatusOK, cached)
	}

	records, err := c.DS.GetAllRecords()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to load records", http.StatusInternalServerError)
	}

	stats := analytics.Aggregate(records, analytics.Window{
		Now:  time.Now(),
		Days: c.Settings.Dashboard.TrendDays,
	})
	c.statsCache.SetDefault(statsCacheKey, stats)
	return ctx.JSON(http.StatusOK, stats)
}

// ReportRow is the condensed per-record view for the reports table.
type ReportRow struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// ReportsResponse is one page of report rows.
type ReportsResponse struct {
	Items       []ReportRow `json:"items"`
	TotalItems  int         `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

// Reports returns the paginated reports table, newest first. Accepts the
// same verdict filter and paging parameters as ListAnalyses.
func (c *Controller) Reports(ctx echo.Context) error {
	page := queryInt(ctx, "page", 1)
	pageSize := queryInt(ctx, "pageSize", analytics.DefaultPageSize)
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var filter *diagnosis.Verdict
	if raw := ctx.QueryParam("verdict"); raw != "" {
		verdict, err := diagnosis.ParseVerdict(raw)
		if err != nil {
			return c.HandleError(ctx, err, "Invalid verdict filter", http.StatusBadRequest)
		}
		filter = &verdict
	}

	records, err := c.DS.GetAllRecords()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to load records", http.StatusInternalServerError)
	}

	result := analytics.Paginate(records, filter, page, pageSize)
	rows := make([]ReportRow, len(result.Items))
	for i := range result.Items {
		record := &result.Items[i]
		rows[i] = ReportRow{
			ID:      record.ID,
			Date:    record.CreatedAt.Format("2006-01-02 15:04"),
			Label:   record.ChickenLabel,
			Summary: record.Interpretation,
			Status:  record.Verdict.String(),
		}
	}

	return ctx.JSON(http.StatusOK, ReportsResponse{
		Items:       rows,
		TotalItems:  result.TotalItems,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
	})
}

func (c *Controller) invalidateStatsCache() {
	c.statsCache.Delete(statsCacheKey)
}

// queryInt parses an integer query parameter, falling back to def on
// missing or malformed input.
func queryInt(ctx echo.Context, name string, def int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
