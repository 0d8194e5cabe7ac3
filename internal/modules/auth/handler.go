package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/response"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service      *Service
	cookies      CookieWriter
	log          *slog.Logger
	exposeErrors bool
}

// NewHandler creates a new auth handler. exposeErrors adds internal error
// details to 500 responses and is meant for development only.
func NewHandler(service *Service, cookies CookieWriter, log *slog.Logger, exposeErrors bool) *Handler {
	return &Handler{
		service:      service,
		cookies:      cookies,
		log:          log,
		exposeErrors: exposeErrors,
	}
}

// Signup creates a customer account and starts a session.
// @Summary		Sign up
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	SignupRequest	true	"name, email, password"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Failure		503	{object}	map[string]interface{}
// @Router		/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cookies.Deliver(c.Writer, result.Tokens)
	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    toPublic(result.User),
	})
}

// Login authenticates by email and password and starts a session.
// @Summary		Log in
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		503	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cookies.Deliver(c.Writer, result.Tokens)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    toPublic(result.User),
	})
}

// Logout revokes the refresh token cookie, if any, and clears both cookies.
// It succeeds whatever state the cookies are in.
// @Summary		Log out
// @Tags		Auth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if refreshToken := session.RefreshTokenFromRequest(c.Request); refreshToken != "" {
		h.service.Logout(c.Request.Context(), refreshToken)
	}

	h.cookies.Clear(c.Writer)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// RefreshToken rotates the credential pair using the refresh token cookie.
// @Summary		Refresh session
// @Tags		Auth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/refresh-token [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken := session.RefreshTokenFromRequest(c.Request)
	if refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is missing")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cookies.Deliver(c.Writer, tokens)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
	})
}

// Profile returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": toPublic(user),
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message)
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, session.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or expired")
	case errors.Is(err, session.ErrStoreFailure):
		h.log.Error("session store failure", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE", "Session service is temporarily unavailable")
	default:
		h.log.Error("auth request failed", "path", c.Request.URL.Path, "error", err)
		if h.exposeErrors {
			response.ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
