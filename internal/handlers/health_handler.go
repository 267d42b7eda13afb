package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rowjay/link-batch-shortener/internal/database"
	"github.com/rowjay/link-batch-shortener/internal/dto"
	"github.com/rs/zerolog/log"
)

type HealthHandler struct {
	store database.KeyValueStore
}

func NewHealthHandler(store database.KeyValueStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health answers 200 even when the store is unreachable; reads degrade to
// an empty collection in that case.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Storage: h.store.Driver()}
	if err := h.store.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("driver", h.store.Driver()).Msg("Storage ping failed")
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}
