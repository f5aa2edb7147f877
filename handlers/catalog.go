package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	catalogRepo "styledecor/database/repository/catalog"
	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogHandler exposes the service catalog over HTTP.
type CatalogHandler struct {
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog catalogRepo.CatalogRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Logger: logger}
}

func (h *CatalogHandler) respondErr(c *gin.Context, err error) {
	if errors.Is(err, catalogRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "Service not found"})
		return
	}
	h.Logger.Error("catalog operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
}

// CreateServiceRequest is the validated body for POST /services.
type CreateServiceRequest struct {
	ServiceName string  `json:"serviceName" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Cost        float64 `json:"cost" binding:"required,gt=0"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photoURL"`
}

// CreateService handles POST /services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service request", err.Error())
		return
	}

	now := time.Now().UTC()
	service := &models.Service{
		ID:          uuid.New().String(),
		ServiceName: req.ServiceName,
		Category:    req.Category,
		Cost:        req.Cost,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Catalog.Create(c.Request.Context(), service); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// ListServices handles GET /services with optional searchText, type and
// budget-range filters.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	minBudget, _ := strconv.ParseFloat(c.Query("minBudget"), 64)
	maxBudget, _ := strconv.ParseFloat(c.Query("maxBudget"), 64)

	services, err := h.Catalog.List(c.Request.Context(), catalogRepo.Filter{
		SearchText: c.Query("searchText"),
		Category:   c.Query("type"),
		MinBudget:  minBudget,
		MaxBudget:  maxBudget,
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	service, err := h.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// UpdateServiceRequest carries admin edits; absent fields stay unchanged.
type UpdateServiceRequest struct {
	ServiceName *string  `json:"serviceName"`
	Category    *string  `json:"category"`
	Cost        *float64 `json:"cost"`
	Description *string  `json:"description"`
	PhotoURL    *string  `json:"photoURL"`
}

// UpdateService handles PATCH /services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service request", err.Error())
		return
	}
	if req.Cost != nil && *req.Cost <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid service request", "cost must be positive")
		return
	}

	service, err := h.Catalog.Update(c.Request.Context(), c.Param("id"), catalogRepo.ServiceUpdate{
		ServiceName: req.ServiceName,
		Category:    req.Category,
		Cost:        req.Cost,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles DELETE /services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
