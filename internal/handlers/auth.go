package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"photogrid/identity/internal/middleware"
	"photogrid/identity/internal/models"
	"photogrid/identity/internal/repository"
	"photogrid/identity/internal/security"
	"photogrid/identity/internal/service"
	"photogrid/identity/internal/validate"
)

type registerRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
	case isValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateUser):
		// Which of username or email collided is deliberately not disclosed.
		c.JSON(http.StatusConflict, gin.H{"error": "a user with this username or email has already been registered"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		validate.ErrUsernameForbiddenChars,
		validate.ErrUsernameLeadingPeriod,
		validate.ErrUsernameLeadingDigit,
		validate.ErrInvalidEmail,
		validate.ErrPasswordForbiddenChars,
		validate.ErrInsecurePassword,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"session_id": token.String()})
	case errors.Is(err, service.ErrUsernameEmpty), errors.Is(err, service.ErrPasswordEmpty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type logoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (h HandlerSet) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.authService.Logout(c.Request.Context(), security.SessionToken(req.SessionID))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
	case errors.Is(err, service.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not log out as user was not logged in"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
	}
}

// SessionStatus reports liveness for the bearer token. A missing or malformed
// header reads as inactive rather than an error; liveness fails closed.
func (h HandlerSet) SessionStatus(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	token := security.SessionToken(strings.TrimPrefix(authHeader, "Bearer "))
	c.JSON(http.StatusOK, gin.H{"active": h.authService.IsActive(c.Request.Context(), token)})
}

type userResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Status      string `json:"status"`
	Permissions string `json:"permissions"`
}

func (h HandlerSet) Me(c *gin.Context) {
	userVal, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Status:      string(user.Status),
		Permissions: string(user.Permissions),
	}})
}

type sessionResponse struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	userVal, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user"})
		return
	}

	tokenVal, _ := c.Get(middleware.ContextTokenKey)
	current, _ := tokenVal.(security.SessionToken)

	sessions, err := h.authService.Sessions(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, sessionResponse{
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			Current:   session.Token == current.String(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"sessions": resp})
}

func (h HandlerSet) SessionStats(c *gin.Context) {
	count, err := h.sessions.CountActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_sessions": count})
}
