package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type SessionResponse struct {
	Token            string `json:"token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresAt        string `json:"expires_at"`
	RefreshExpiresAt string `json:"refresh_expires_at"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt, result.RawRefreshToken, result.RefreshExpiresAt)
	c.JSON(http.StatusOK, sessionResponse(result))
}

// RefreshSession rotates a session from its refresh token. The token is
// read from the request body for API clients, falling back to the refresh
// cookie for browsers.
func (s *Server) RefreshSession(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		cookieToken, ok := s.sessions.ReadRefreshToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		token = cookieToken
	}

	result, err := s.authsvc.Refresh(c.Request.Context(), token)
	if err != nil {
		s.sessions.Clear(c)
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt, result.RawRefreshToken, result.RefreshExpiresAt)
	c.JSON(http.StatusOK, sessionResponse(result))
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if ok {
		_ = s.authsvc.Logout(c.Request.Context(), token)
	}

	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	clinic, err := s.clinicSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(contextUserIDKey),
		"clinic":  clinic,
	})
}

func (s *Server) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userID, err := snowflake.ParseString(c.GetString(contextUserIDKey))
	if err != nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authsvc.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func sessionResponse(result *authdomain.LoginResult) SessionResponse {
	return SessionResponse{
		Token:            result.RawToken,
		RefreshToken:     result.RawRefreshToken,
		ExpiresAt:        result.ExpiresAt.UTC().Format(time.RFC3339),
		RefreshExpiresAt: result.RefreshExpiresAt.UTC().Format(time.RFC3339),
	}
}
