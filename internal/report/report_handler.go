package report

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"worklane/internal/shared/apperror"
	"worklane/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// summaryCacheTTL bounds how stale the cached aggregates may get.
const summaryCacheTTL = 60 * time.Second

type Handler struct {
	service Service
	cache   *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, cache *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, cache: cache, sf: &singleflight.Group{}, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// cached serves the aggregate from Redis when fresh, rebuilding and
// repopulating on a miss. Cache failures degrade to a rebuild.
func (h *Handler) cached(c *gin.Context, key string, build func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if raw, err := h.cache.Get(ctx, key).Bytes(); err == nil {
			response.Success(c, http.StatusOK, json.RawMessage(raw), nil)
			return
		} else if err != redis.Nil {
			h.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	// Collapse concurrent misses into a single rebuild per key.
	data, err, _ := h.sf.Do(key, func() (any, error) {
		data, err := build(ctx)
		if err != nil {
			return nil, err
		}

		if h.cache != nil {
			if raw, err := json.Marshal(data); err == nil {
				if err := h.cache.Set(ctx, key, raw, summaryCacheTTL).Err(); err != nil {
					h.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return data, nil
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, data, nil)
}

func (h *Handler) TimesheetSummary(c *gin.Context) {
	h.cached(c, "reports:timesheet-summary", func(ctx context.Context) (any, error) {
		return h.service.TimesheetSummary(ctx)
	})
}

func (h *Handler) ProjectHours(c *gin.Context) {
	h.cached(c, "reports:project-hours", func(ctx context.Context) (any, error) {
		return h.service.ProjectHours(ctx)
	})
}

func (h *Handler) ExportTimesheets(c *gin.Context) {
	raw, err := h.service.ExportTimesheetsCSV(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timesheets.csv"`)
	c.Data(http.StatusOK, "text/csv", raw)
}

func (h *Handler) ExportLeaves(c *gin.Context) {
	raw, err := h.service.ExportLeavesCSV(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leaves.csv"`)
	c.Data(http.StatusOK, "text/csv", raw)
}
