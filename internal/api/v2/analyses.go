package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fluwatch/fluwatch-go/internal/analytics"
	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/thermal"
)

// maxPageSize caps the report page size a client may request.
const maxPageSize = 100

// AnalysisRequest carries the thermal readings for one analysis. All
// readings are optional; missing values are treated as unavailable.
type AnalysisRequest struct {
	ChickenLabel string   `json:"chickenLabel"`
	HeadTemp     *float64 `json:"head"`
	BodyMean     *float64 `json:"bodyMean"`
	BodyMin      *float64 `json:"bodyMin"`
	BodyMax      *float64 `json:"bodyMax"`
	LegTemp      *float64 `json:"leg"`
	Confidence   *float64 `json:"confidence"`
}

func (r *AnalysisRequest) readings() thermal.ReadingSet {
	return thermal.ReadingSet{
		Head:       r.HeadTemp,
		BodyMean:   r.BodyMean,
		BodyMin:    r.BodyMin,
		BodyMax:    r.BodyMax,
		Leg:        r.LegTemp,
		Confidence: r.Confidence,
	}
}

// ReadingsView echoes the normalized readings back to the client.
type ReadingsView struct {
	HeadTemp   *float64 `json:"head"`
	BodyMean   *float64 `json:"bodyMean"`
	BodyMin    *float64 `json:"bodyMin"`
	BodyMax    *float64 `json:"bodyMax"`
	LegTemp    *float64 `json:"leg"`
	Confidence *float64 `json:"confidence"`
}

// AnalysisResponse is the outcome of one classification.
type AnalysisResponse struct {
	Verdict     diagnosis.Verdict     `json:"verdict"`
	Explanation diagnosis.Explanation `json:"explanation"`
	Readings    ReadingsView          `json:"readings"`
}

// ClassifyAnalysis classifies a reading set and returns the verdict with
// its explanation. Nothing is persisted.
func (c *Controller) ClassifyAnalysis(ctx echo.Context) error {
	var req AnalysisRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	rs := req.readings()
	if err := rs.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid thermal readings", http.StatusBadRequest)
	}

	verdict := c.Engine.Classify(rs)
	if c.metrics != nil {
		c.metrics.CountAnalysis(verdict.String())
	}

	normalized := rs.Normalized()
	return ctx.JSON(http.StatusOK, AnalysisResponse{
		Verdict:     verdict,
		Explanation: c.Engine.Explain(verdict, rs),
		Readings: ReadingsView{
			HeadTemp:   normalized.Head,
			BodyMean:   normalized.BodyMean,
			BodyMin:    normalized.BodyMin,
			BodyMax:    normalized.BodyMax,
			LegTemp:    normalized.Leg,
			Confidence: normalized.Confidence,
		},
	})
}

// SaveAnalysisRequest extends an analysis request with persistence fields.
type SaveAnalysisRequest struct {
	AnalysisRequest
	Notes      string `json:"notes"`
	ImageRef   string `json:"imageRef"`
	HeatmapRef string `json:"heatmapRef"`
}

// SaveAnalysisResponse identifies the stored record.
type SaveAnalysisResponse struct {
	ID      string            `json:"id"`
	Verdict diagnosis.Verdict `json:"verdict"`
}

// SaveAnalysis classifies a reading set and persists the result. Failed
// analyses are rejected with 422, they carry no health information worth
// storing.
func (c *Controller) SaveAnalysis(ctx echo.Context) error {
	var req SaveAnalysisRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	rs := req.readings()
	if err := rs.Validate(); err != nil {
		return c.HandleError(ctx, err, "Invalid thermal readings", http.StatusBadRequest)
	}

	verdict := c.Engine.Classify(rs)
	if c.metrics != nil {
		c.metrics.CountAnalysis(verdict.String())
	}
	if !verdict.Actionable() {
		return ctx.JSON(http.StatusUnprocessableEntity, NewErrorResponse(nil,
			"Analysis failed, record not saved", http.StatusUnprocessableEntity))
	}

	explanation := c.Engine.Explain(verdict, rs)
	record := &datastore.Record{
		ChickenLabel:       req.ChickenLabel,
		HeadTemp:           req.HeadTemp,
		BodyMean:           req.BodyMean,
		BodyMin:            req.BodyMin,
		BodyMax:            req.BodyMax,
		LegTemp:            req.LegTemp,
		Confidence:         req.Confidence,
		Verdict:            verdict,
		ObservedSigns:      datastore.JSONStrings(explanation.ObservedSigns),
		Interpretation:     explanation.Interpretation,
		RecommendedActions: datastore.JSONStrings(explanation.RecommendedActions),
		Notes:              req.Notes,
		ImageRef:           req.ImageRef,
		HeatmapRef:         req.HeatmapRef,
	}

	if err := c.DS.Save(record); err != nil {
		return c.HandleError(ctx, err, "Failed to save analysis record", http.StatusInternalServerError)
	}
	if c.metrics != nil {
		c.metrics.CountRecordSaved()
	}
	c.invalidateStatsCache()

	return ctx.JSON(http.StatusCreated, SaveAnalysisResponse{
		ID:      record.ID,
		Verdict: verdict,
	})
}

// ListAnalyses returns a paginated list of stored records, newest first.
// Query parameters: verdict, numResults, offset via page and pageSize.
func (c *Controller) ListAnalyses(ctx echo.Context) error {
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

	return ctx.JSON(http.StatusOK, analytics.Paginate(records, filter, page, pageSize))
}

// GetAnalysis returns one stored record by ID.
func (c *Controller) GetAnalysis(ctx echo.Context) error {
	record, err := c.DS.Get(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Record not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, record)
}

// NotesUpdateRequest carries the replacement operator notes.
type NotesUpdateRequest struct {
	Notes string `json:"notes"`
}

// UpdateAnalysisNotes replaces the operator notes on a record.
func (c *Controller) UpdateAnalysisNotes(ctx echo.Context) error {
	var req NotesUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	id := ctx.Param("id")
	updated, err := c.DS.UpdateNotes(id, req.Notes)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to update notes", http.StatusInternalServerError)
	}
	if !updated {
		return ctx.JSON(http.StatusNotFound, NewErrorResponse(nil, "Record not found", http.StatusNotFound))
	}

	record, err := c.DS.Get(id)
	if err != nil {
		return c.HandleError(ctx, err, "Record not found", http.StatusNotFound)
	}
	return ctx.JSON(http.StatusOK, record)
}

// DeleteAnalysis removes a stored record.
func (c *Controller) DeleteAnalysis(ctx echo.Context) error {
	deleted, err := c.DS.Delete(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to delete record", http.StatusInternalServerError)
	}
	if !deleted {
		return ctx.JSON(http.StatusNotFound, NewErrorResponse(nil, "Record not found", http.StatusNotFound))
	}

	if c.metrics != nil {
		c.metrics.CountRecordDeleted()
	}
	c.invalidateStatsCache()
	return ctx.NoContent(http.StatusNoContent)
}
