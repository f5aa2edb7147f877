package handlers

import (
	"net/http"

	bookingRepo "styledecor/database/repository/booking"
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/services/booking"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Crud       booking.CrudService
	Status     booking.StatusService
	Assignment booking.AssignmentService
	Logger     *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(crud booking.CrudService, status booking.StatusService, assignment booking.AssignmentService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Crud: crud, Status: status, Assignment: assignment, Logger: logger}
}

// CreateBookingRequest is the validated body for POST /bookings.
type CreateBookingRequest struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	created, err := h.Crud.Create(c.Request.Context(), middleware.AuthedEmail(c), booking.CreateBookingInput{
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		Location:    req.Location,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListBookings handles GET /bookings. Non-admins may only list their own.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = middleware.AuthedEmail(c)
	}
	if middleware.AuthedRole(c) != models.RoleAdmin && email != middleware.AuthedEmail(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse{Message: "forbidden access"})
		return
	}

	var status models.BookingStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseBookingStatus(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid status filter", err.Error())
			return
		}
		status = parsed
	}

	bookings, err := h.Crud.ListForClient(c.Request.Context(), email, status)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/:id. Owner or admin only.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Crud.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	if middleware.AuthedRole(c) != models.RoleAdmin && b.ClientEmail != middleware.AuthedEmail(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse{Message: "forbidden access"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingRequest is the validated body for PATCH /bookings/:id/mybooking.
// Only these fields are client-editable, and only before payment.
type UpdateBookingRequest struct {
	BookingDate *string `json:"bookingDate"`
	Location    *string `json:"location"`
}

// UpdateMyBooking handles PATCH /bookings/:id/mybooking.
func (h *BookingHandler) UpdateMyBooking(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking update", err.Error())
		return
	}

	updated, err := h.Crud.UpdateDetails(c.Request.Context(), c.Param("id"), middleware.AuthedEmail(c), bookingRepo.UpdateFields{
		BookingDate: req.BookingDate,
		Location:    req.Location,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBooking handles DELETE /bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Crud.Delete(c.Request.Context(), c.Param("id"), middleware.AuthedEmail(c)); err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// DecoratorBookings handles GET /bookings/decorators and its /today and
// /completed variants. The decorator identity always comes from the token,
// never from the query string.
func (h *BookingHandler) DecoratorBookings(scope booking.DecoratorListScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := h.Crud.ListForDecorator(c.Request.Context(), middleware.AuthedEmail(c), scope)
		if err != nil {
			respondDomainError(c, h.Logger, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// UpdateStatusRequest is the validated body for PATCH /bookings/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status update", err.Error())
		return
	}

	target, err := models.ParseBookingStatus(req.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid status update", err.Error())
		return
	}

	actor := models.Actor{Email: middleware.AuthedEmail(c), Role: middleware.AuthedRole(c)}
	updated, err := h.Status.ApplyTransition(c.Request.Context(), c.Param("id"), target, actor)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RejectBooking handles PATCH /bookings/:id/reject.
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	actor := models.Actor{Email: middleware.AuthedEmail(c), Role: middleware.AuthedRole(c)}
	updated, err := h.Status.Reject(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AssignDecoratorRequest is the validated body for
// PATCH /bookings/:id/assign-decorator.
type AssignDecoratorRequest struct {
	DecoratorID    string `json:"decoratorId" binding:"required"`
	DecoratorName  string `json:"decoratorName" binding:"required"`
	DecoratorEmail string `json:"decoratorEmail" binding:"required,email"`
}

// AssignDecorator handles PATCH /bookings/:id/assign-decorator.
func (h *BookingHandler) AssignDecorator(c *gin.Context) {
	var req AssignDecoratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid assignment request", err.Error())
		return
	}

	updated, err := h.Assignment.Assign(c.Request.Context(), c.Param("id"), models.DecoratorRef{
		DecoratorID:    req.DecoratorID,
		DecoratorName:  req.DecoratorName,
		DecoratorEmail: req.DecoratorEmail,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
