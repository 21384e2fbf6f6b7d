package handlers

import (
	"errors"
	"net/http"

	"equiptrack/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login, logout, and the username helper.
type AuthHandler struct {
	Service auth.AuthService
}

// NewAuthHandler creates an AuthHandler backed by the given service.
func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type registerRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=20"`
	Password   string `json:"password" binding:"required,min=6,max=15"`
	InviteCode string `json:"inviteCode" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type checkUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// setSessionCookie places the session token in the HTTP-only credential
// cookie; its max-age matches the session's absolute expiry.
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, token, int(auth.SessionTTL.Seconds()), "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", true, true)
}

// RegisterHandler handles invite-gated user registration.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(req.Username, req.Password, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, auth.ErrInvalidInvite):
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid invite code"})
		case errors.Is(err, auth.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		default:
			logger.Error("User registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles user login and sets the session cookie.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler revokes the current session and clears the cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	logger := getLogger(c)

	token, err := c.Cookie(auth.SessionCookieName)
	if err == nil && token != "" {
		if err := h.Service.Logout(token); err != nil {
			logger.Error("Logout failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CheckUsernameHandler reports whether a username is taken. Interactive
// registration feedback only.
func (h *AuthHandler) CheckUsernameHandler(c *gin.Context) {
	logger := getLogger(c)

	var req checkUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must not be empty"})
		return
	}

	exists, err := h.Service.UsernameExists(req.Username)
	if err != nil {
		logger.Error("Username check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Username check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
