package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/config"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// IndexHandler serves the banner and health endpoints
type IndexHandler struct {
	cfg         *config.Config
	db          *gorm.DB
	redisClient *redis.Client
}

// NewIndexHandler creates a new handler for the banner and health endpoints
func NewIndexHandler(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *IndexHandler {
	return &IndexHandler{cfg: cfg, db: db, redisClient: redisClient}
}

// Index returns the API name and version
func (h *IndexHandler) Index(c echo.Context) error {
	message := fmt.Sprintf("%s %s", h.cfg.APIName, h.cfg.APIVersion)
	return response.SuccessResponse(c, nil, message)
}

// Health reports the status of the backing stores
func (h *IndexHandler) Health(c echo.Context) error {
	status := echo.Map{"database": "ok", "cache": "disabled"}
	healthy := true

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if h.redisClient != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
			healthy = false
		} else {
			status["cache"] = "ok"
		}
	}

	if !healthy {
		return c.JSON(http.StatusInternalServerError, response.Response{
			Success:   false,
			Message:   "Service degraded",
			Data:      status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return response.SuccessResponse(c, status, "Healthy")
}
