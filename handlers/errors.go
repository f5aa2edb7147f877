package handlers

import (
	"net/http"

	"styledecor/services/booking"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondDomainError maps a booking-domain error onto the HTTP surface.
// Conflicts get their own status and code so clients can tell a scheduling
// collision apart from generic validation failures.
func respondDomainError(c *gin.Context, logger *zap.Logger, err error) {
	code := booking.CodeOf(err)

	var status int
	switch code {
	case booking.CodeNotFound:
		status = http.StatusNotFound
	case booking.CodeInvalidTransition, booking.CodePolicyViolation:
		status = http.StatusBadRequest
	case booking.CodeConflict:
		status = http.StatusConflict
	case booking.CodeForbidden:
		status = http.StatusForbidden
	case booking.CodeGatewayError:
		status = http.StatusBadGateway
	default:
		logger.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}

	c.JSON(status, utils.ErrorResponse{Message: err.Error(), Code: code})
}
