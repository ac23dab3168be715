package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"syscatalog/internal/models"
	"syscatalog/internal/services"
	"syscatalog/pkg/response"
)

const systemNotFoundDetail = "System not found"

type SystemHandler struct {
	catalog *services.CatalogService
}

func NewSystemHandler(catalog *services.CatalogService) *SystemHandler {
	return &SystemHandler{catalog: catalog}
}

// Create handles POST /api/systems.
func (h *SystemHandler) Create(c *gin.Context) {
	var req models.CreateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.catalog.Create(&req)
	if err != nil {
		response.ServerError(c, "Failed to save systems")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// List handles GET /api/systems.
func (h *SystemHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// GetByID handles GET /api/systems/:system_id.
func (h *SystemHandler) GetByID(c *gin.Context) {
	record, err := h.catalog.Get(c.Param("system_id"))
	if err != nil {
		response.NotFound(c, systemNotFoundDetail)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Update handles PUT /api/systems/:system_id.
func (h *SystemHandler) Update(c *gin.Context) {
	var req models.UpdateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.catalog.Update(c.Param("system_id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrSystemNotFound) {
			response.NotFound(c, systemNotFoundDetail)
			return
		}
		response.ServerError(c, "Failed to save systems")
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /api/systems/:system_id.
func (h *SystemHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Param("system_id")); err != nil {
		if errors.Is(err, services.ErrSystemNotFound) {
			response.NotFound(c, systemNotFoundDetail)
			return
		}
		response.ServerError(c, "Failed to save systems")
		return
	}
	c.Status(http.StatusNoContent)
}
