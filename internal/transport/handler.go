package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/config"
	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/observer"
	"go-image-analyzer/internal/service"
	"go-image-analyzer/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewHandler builds the HTTP API. metrics may be nil, in which case
// GET /metrics is not registered.
func NewHandler(svc service.ImageAnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/drivers", listDrivers(svc))
	r.POST("/analyze", analyzeImage(svc, cfg))
	r.POST("/analyze/batch", analyzeBatch(svc, cfg))
	if metrics != nil {
		r.GET("/metrics", metricsSnapshot(metrics))
	}

	return r
}

func listDrivers(svc service.ImageAnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"drivers": svc.Drivers()})
	}
}

func analyzeImage(svc service.ImageAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		// Log request start
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing image analysis request")

		var req models.AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		// A driver named in the query string wins over the body
		if driver := c.Query("driver"); driver != "" {
			req.Driver = driver
		}

		if err := svc.ValidateSource(req.Source); err != nil {
			respondError(c, determineStatusCode(err), "invalid image source", err)
			return
		}

		options := analyzer.DefaultOptions().
			WithDriver(req.Driver).
			WithTimeout(cfg.AnalysisTimeout)
		result, err := svc.AnalyzeSource(ctx, req.Source, options)
		if err != nil {
			respondError(c, determineStatusCode(err), "image analysis failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"source":             req.Source,
			"driver":             result.Driver,
			"processing_time_ms": result.ProcessingTime.Milliseconds(),
			"format":             result.Info.Format,
		}).Info("Image analysis completed successfully")

		c.JSON(http.StatusOK, result.Response())
	}
}

func analyzeBatch(svc service.ImageAnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.BatchAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		options := analyzer.DefaultOptions().
			WithDriver(req.Driver).
			WithWorkers(cfg.AnalysisWorkers).
			WithTimeout(cfg.AnalysisTimeout)
		results := svc.AnalyzeBatch(ctx, req.Sources, options)

		resp := models.BatchAnalysisResponse{Results: make([]models.BatchItem, len(results))}
		for i, result := range results {
			item := models.BatchItem{Source: result.Source}
			if result.Err != nil {
				code := determineStatusCode(result.Err)
				item.Error = &models.ErrorResponse{
					Error:   statusText(code),
					Message: result.Err.Error(),
				}
				resp.Failed++
			} else {
				item.Result = result.Response()
				resp.Succeeded++
			}
			resp.Results[i] = item
		}

		logger.WithFields(logrus.Fields{
			"sources":   len(req.Sources),
			"succeeded": resp.Succeeded,
			"failed":    resp.Failed,
		}).Info("Batch analysis completed")

		c.JSON(http.StatusOK, resp)
	}
}

func metricsSnapshot(metrics *observer.MetricsObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.GetMetrics())
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

// statusClientClosedRequest reports a request the client abandoned
const statusClientClosedRequest = 499

func statusText(code int) string {
	if code == statusClientClosedRequest {
		return "Client Closed Request"
	}
	return http.StatusText(code)
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   statusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
