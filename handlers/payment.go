package handlers

import (
	"net/http"
	"strconv"

	paymentRepo "styledecor/database/repository/payment"
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/services/booking"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes checkout and reconciliation over HTTP.
type PaymentHandler struct {
	Crud       booking.CrudService
	Gateway    booking.PaymentGateway
	Reconciler booking.ReconcileService
	Payments   paymentRepo.PaymentRepository
	Logger     *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(crud booking.CrudService, gateway booking.PaymentGateway, reconciler booking.ReconcileService, payments paymentRepo.PaymentRepository, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Crud: crud, Gateway: gateway, Reconciler: reconciler, Payments: payments, Logger: logger}
}

// CheckoutRequest is the validated body for POST /create-checkout-session.
// Everything else about the session is derived from the stored booking.
type CheckoutRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

// CreateCheckoutSession handles POST /create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkout request", err.Error())
		return
	}

	b, err := h.Crud.Get(c.Request.Context(), req.BookingID)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	if b.ClientEmail != middleware.AuthedEmail(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse{Message: "forbidden access"})
		return
	}
	if b.Status != models.StatusPendingPayment {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "booking is already paid"})
		return
	}

	url, err := h.Gateway.CreateCheckoutSession(c.Request.Context(), booking.CheckoutRequest{
		BookingID:   b.ID,
		ServiceName: b.ServiceName,
		ClientEmail: b.ClientEmail,
		BookingDate: b.BookingDate,
		Location:    b.Location,
		TotalCost:   b.TotalCost,
	})
	if err != nil {
		h.Logger.Error("checkout session creation failed", zap.Error(err), zap.String("bookingId", b.ID))
		c.JSON(http.StatusBadGateway, utils.ErrorResponse{Message: "failed to create checkout session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PaymentSuccess handles PATCH /payment-success?session_id=. The operation is
// idempotent, so gateway redirect replays and client retries are safe.
func (h *PaymentHandler) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing session_id", "session_id query parameter is required")
		return
	}

	result, err := h.Reconciler.Reconcile(c.Request.Context(), sessionID)
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListPayments handles GET /payments. Non-admins may only list their own.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = middleware.AuthedEmail(c)
	}
	if middleware.AuthedRole(c) != models.RoleAdmin && email != middleware.AuthedEmail(c) {
		c.JSON(http.StatusForbidden, utils.ErrorResponse{Message: "forbidden access"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	payments, err := h.Payments.List(c.Request.Context(), paymentRepo.Query{
		CustomerEmail: email,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		h.Logger.Error("failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
