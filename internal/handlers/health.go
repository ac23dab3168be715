package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"syscatalog/internal/services"
)

const (
	ServiceName    = "Enterprise Systems Catalog API"
	ServiceVersion = "1.0.0"
)

// HealthHandler serves the root probe and the detailed health endpoint.
type HealthHandler struct {
	catalog *services.CatalogService
	chat    *services.ChatService
}

func NewHealthHandler(catalog *services.CatalogService, chat *services.ChatService) *HealthHandler {
	return &HealthHandler{catalog: catalog, chat: chat}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": ServiceName,
		"version": ServiceVersion,
	})
}

// CheckHealth handles GET /health with per-component detail.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ragStatus := "ready"
	if !h.chat.Ready() {
		ragStatus = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": ServiceName,
		"components": gin.H{
			"catalog_records": h.catalog.Count(),
			"rag_pipeline":    ragStatus,
		},
	})
}
