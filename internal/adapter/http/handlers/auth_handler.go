package handlers

import (
	"errors"
	"net/http"

	request "proassignment/internal/adapter/http/dto/request"
	response "proassignment/internal/adapter/http/dto/response"
	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase"
	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// Register creates an account
// @Summary Register a user
// @Description Anyone may register as a client; writer and admin accounts need an admin token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.RegisterRequest true "Account data"
// @Success 201 {object} response.UserResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, pkg.NewDomainErrorSimple("INVALID_REGISTRATION", "Name, a valid email and an 8+ character password are required", http.StatusBadRequest))
		return
	}

	var actor *entities.Viewer
	if v, ok := middleware.ViewerFrom(c); ok {
		actor = &v
	}
	user, err := h.usecase.Register(c.Request.Context(), actor, payload.ToInput())
	if err != nil {
		log.Printf("[auth][handler] register failed email=%s err=%v", payload.Email, err)
		renderError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

// Login issues a bearer token
// @Summary Log in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.TokenResponse
// @Failure 401 {object} pkg.HTTPError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		renderError(c, errInvalidRequest)
		return
	}
	token, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		renderError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAuthToken(token))
}

// Me returns the caller's account
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.UserResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	user, err := h.usecase.Me(c.Request.Context(), v)
	if err != nil {
		renderError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUser(user))
}

func (h *AuthHandler) ListWriters(c *gin.Context) {
	v, ok := viewer(c)
	if !ok {
		return
	}
	writers, err := h.usecase.ListWriters(c.Request.Context(), v)
	if err != nil {
		renderError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(writers))
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRegistration):
		return pkg.NewDomainErrorSimple("INVALID_REGISTRATION", "Invalid registration data", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmailTaken):
		return pkg.NewDomainErrorSimple("EMAIL_TAKEN", "Email already registered", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	default:
		return mapCommonError(err)
	}
}
