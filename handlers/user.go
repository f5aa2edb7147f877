package handlers

import (
	"errors"
	"net/http"
	"time"

	userRepo "styledecor/database/repository/user"
	"styledecor/middleware"
	"styledecor/models"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler exposes account management over HTTP.
type UserHandler struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users userRepo.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// RegisterUserRequest is the validated body for POST /users.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// RegisterUser handles POST /users. Re-registering an existing email is not an
// error: sign-in flows replay it on every login.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid user request", err.Error())
		return
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        models.RoleUser,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := h.Users.CreateIfAbsent(c.Request.Context(), user)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "User already registered"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserRole handles GET /users/:email/role. Unknown emails resolve to the
// default role rather than 404 so clients can call it before registration.
func (h *UserHandler) GetUserRole(c *gin.Context) {
	role, err := h.Users.RoleOf(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.Logger.Error("failed to resolve role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// ListUsers handles GET /users with an optional searchText filter.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.Search(c.Request.Context(), c.Query("searchText"))
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRoleRequest is the validated body for PATCH /users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin decorator"`
}

// UpdateUserRole handles PATCH /users/:id/role.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid role request", err.Error())
		return
	}

	user, err := h.Users.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "User not found"})
			return
		}
		h.Logger.Error("failed to update role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}

	// Cached role is stale the moment the role changes.
	utils.InvalidateRole(c.Request.Context(), user.Email)
	c.JSON(http.StatusOK, user)
}

// Profile handles GET /users/profile for the authenticated caller.
func (h *UserHandler) Profile(c *gin.Context) {
	email := middleware.AuthedEmail(c)

	user, err := h.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.Logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "Internal Server Error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
