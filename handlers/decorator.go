package handlers

import (
	"errors"
	"net/http"
	"strconv"

	decoratorRepo "styledecor/database/repository/decorator"
	"styledecor/models"
	"styledecor/services/decorator"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DecoratorHandler exposes decorator-profile management over HTTP.
type DecoratorHandler struct {
	Service decorator.DecoratorService
	Logger  *zap.Logger
}

// NewDecoratorHandler creates a DecoratorHandler.
func NewDecoratorHandler(service decorator.DecoratorService, logger *zap.Logger) *DecoratorHandler {
	return &DecoratorHandler{Service: service, Logger: logger}
}

func (h *DecoratorHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, decoratorRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "Decorator not found"})
	case errors.Is(err, decorator.ErrAlreadyExists):
		c.JSON(http.StatusConflict, utils.ErrorResponse{Message: "Decorator already created"})
	default:
		h.Logger.Error("decorator operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
	}
}

// RegisterDecoratorRequest is the validated body for POST /decorators.
type RegisterDecoratorRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

// CreateDecorator handles POST /decorators.
func (h *DecoratorHandler) CreateDecorator(c *gin.Context) {
	var req RegisterDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid decorator request", err.Error())
		return
	}

	created, err := h.Service.Register(c.Request.Context(), decorator.RegisterInput{
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListDecorators handles GET /decorators.
func (h *DecoratorHandler) ListDecorators(c *gin.Context) {
	decorators, err := h.Service.List(c.Request.Context(), decoratorRepo.Filter{
		ApproveStatus: c.Query("approveStatus"),
		WorkStatus:    c.Query("workStatus"),
		Location:      c.Query("location"),
		Specialty:     c.Query("specialty"),
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, decorators)
}

// TopDecorators handles GET /decorators/top.
func (h *DecoratorHandler) TopDecorators(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if err != nil || limit < 1 {
		limit = 6
	}

	decorators, err := h.Service.Top(c.Request.Context(), limit)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, decorators)
}

// ApproveDecoratorRequest is the validated body for
// PATCH /decorators/:id/approve.
type ApproveDecoratorRequest struct {
	ApproveStatus string   `json:"approveStatus" binding:"required,oneof=approved rejected"`
	Location      string   `json:"location"`
	Ratings       float64  `json:"ratings"`
	Specialties   []string `json:"specialties"`
}

// ApproveDecorator handles PATCH /decorators/:id/approve: either approves the
// profile (promoting the linked user) or rejects the application.
func (h *DecoratorHandler) ApproveDecorator(c *gin.Context) {
	var req ApproveDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid approval request", err.Error())
		return
	}
	id := c.Param("id")

	if req.ApproveStatus == models.ApproveRejected {
		if err := h.Service.RejectApplication(c.Request.Context(), id); err != nil {
			h.respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decorator rejected"})
		return
	}

	if req.Location == "" || req.Ratings == 0 || len(req.Specialties) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid approval request",
			"location, ratings and at least one specialty are required to approve")
		return
	}

	err := h.Service.Approve(c.Request.Context(), id, decoratorRepo.ApprovalInfo{
		Location:    req.Location,
		Ratings:     req.Ratings,
		Specialties: req.Specialties,
	})
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decorator approved"})
}

// DisableDecorator handles PATCH /decorators/:id/disable.
func (h *DecoratorHandler) DisableDecorator(c *gin.Context) {
	if err := h.Service.SetWorkStatus(c.Request.Context(), c.Param("id"), models.WorkDisabled); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decorator disabled successfully"})
}

// EnableDecorator handles PATCH /decorators/:id/enable.
func (h *DecoratorHandler) EnableDecorator(c *gin.Context) {
	if err := h.Service.SetWorkStatus(c.Request.Context(), c.Param("id"), models.WorkAvailable); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Decorator enabled"})
}

// DeleteDecorator handles DELETE /decorators/:id.
func (h *DecoratorHandler) DeleteDecorator(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Decorator deleted and role reset to user"})
}
