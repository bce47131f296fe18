package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/listingkit/listingkit-backend/internal/models"
	"github.com/listingkit/listingkit-backend/internal/repository"
	"github.com/listingkit/listingkit-backend/internal/service"
	"github.com/listingkit/listingkit-backend/pkg/response"
)

// AuthHandler handles signup and login
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), creds)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, session)
	case errors.Is(err, service.ErrMissingCredentials):
		response.BadRequest(c, "Email and password are required")
	case errors.Is(err, service.ErrWeakPassword):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrUserExists):
		response.Error(c, http.StatusConflict, "User with this email already exists")
	default:
		response.InternalError(c, "Failed to process sign up request", err)
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	session, err := h.service.Login(c.Request.Context(), creds)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, session)
	case errors.Is(err, service.ErrMissingCredentials):
		response.BadRequest(c, "Email and password are required")
	case errors.Is(err, repository.ErrUserNotFound):
		response.NotFound(c, "User does not exist")
	case errors.Is(err, service.ErrInvalidPassword):
		response.BadRequest(c, "Invalid login credentials")
	default:
		response.InternalError(c, "Failed to process login request", err)
	}
}
