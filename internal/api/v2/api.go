// Package api implements the HTTP API for thermal health analyses,
// records, and dashboard statistics.
package api

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"

	"github.com/fluwatch/fluwatch-go/internal/conf"
	"github.com/fluwatch/fluwatch-go/internal/datastore"
	"github.com/fluwatch/fluwatch-go/internal/diagnosis"
	"github.com/fluwatch/fluwatch-go/internal/errors"
	"github.com/fluwatch/fluwatch-go/internal/logging"
	"github.com/fluwatch/fluwatch-go/internal/observability"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings
	Engine   *diagnosis.Engine

	logger      *slog.Logger
	loggerClose func() error
	statsCache  *cache.Cache
	metrics     *observability.Metrics
	startTime   time.Time
}

// New creates a Controller and registers its routes under /api/v2.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, metrics *observability.Metrics) *Controller {
	cacheTTL := time.Duration(settings.Dashboard.CacheTTL) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		Engine:     diagnosis.NewEngine(diagnosis.ThresholdsFromSettings(settings.Detection)),
		logger:     logging.ForService("api"),
		statsCache: cache.New(cacheTTL, 2*cacheTTL),
		metrics:    metrics,
		startTime:  time.Now(),
	}

	if settings.WebServer.Log.Enabled && settings.WebServer.Log.Path != "" {
		level := slog.LevelInfo
		if settings.WebServer.Debug {
			level = slog.LevelDebug
		}
		fileLogger, closeFunc, err := logging.NewFileLogger(settings.WebServer.Log.Path, "api", level)
		if err != nil {
			c.logger.Warn("falling back to default logger", slog.Any("error", err))
		} else {
			c.logger = fileLogger
			c.loggerClose = closeFunc
		}
	}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(c.LoggingMiddleware())

	c.Group = e.Group("/api/v2")
	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	c.Group.POST("/analyses", c.ClassifyAnalysis)
	c.Group.POST("/analyses/save", c.SaveAnalysis)
	c.Group.GET("/analyses", c.ListAnalyses)
	c.Group.GET("/analyses/:id", c.GetAnalysis)
	c.Group.PATCH("/analyses/:id/notes", c.UpdateAnalysisNotes)
	c.Group.DELETE("/analyses/:id", c.DeleteAnalysis)

	c.Group.GET("/dashboard", c.DashboardStats)
	c.Group.GET("/reports", c.Reports)

	if c.metrics != nil {
		c.Echo.GET("/metrics", echo.WrapHandler(c.metrics.Handler()))
	}
}

// LoggingMiddleware logs every request and feeds the duration histogram.
func (c *Controller) LoggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			req := ctx.Request()
			res := ctx.Response()
			elapsed := time.Since(start)

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.String("ip", ctx.RealIP()),
				slog.Int64("latency_ms", elapsed.Milliseconds()),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			c.logger.LogAttrs(req.Context(), slog.LevelInfo, "API Request", attrs...)

			if c.metrics != nil {
				c.metrics.ObserveHTTPRequest(req.Method, ctx.Path(), strconv.Itoa(res.Status), elapsed.Seconds())
			}
			return err
		}
	}
}

// Shutdown releases controller resources, closing the request log file if
// one was opened.
func (c *Controller) Shutdown() error {
	if c.loggerClose != nil {
		return c.loggerClose()
	}
	return nil
}

// HealthCheck reports service liveness.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"uptime_s":  int64(time.Since(c.startTime).Seconds()),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse creates an error response with a fresh correlation ID.
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}
	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError logs the error and returns the JSON error response. Known
// error categories override the caller-provided status code.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	switch {
	case errors.IsNotFound(err):
		code = http.StatusNotFound
	case errors.IsValidation(err):
		code = http.StatusBadRequest
	}

	resp := NewErrorResponse(err, message, code)
	c.logger.Error("API Error",
		"correlation_id", resp.CorrelationID,
		"message", message,
		"error", fmt.Sprint(err),
		"code", code,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP())
	return ctx.JSON(code, resp)
}
