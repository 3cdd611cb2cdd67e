package server

import (
	"net/http"
	"strings"

	authdomain "github.com/bluedrop/aquarate/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	account, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Every account starts with a placeholder profile the customer edits
	// before requesting quotes.
	if _, err := s.profileSvc.CreateDefault(c.Request.Context(), account.Username); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{
		ID:       account.ID.String(),
		Username: account.Username,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	ip := c.ClientIP()

	allowed, _, err := s.loginLimiter.Allow(c.Request.Context(), username, ip)
	if err == nil && !allowed {
		s.obsMetrics.RecordLoginDenied(c.Request.Context(), "rate_limited")
		AbortWithError(c, authdomain.ErrTooManyAttempts)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Username:  username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: ip,
	})
	if err != nil {
		s.obsMetrics.RecordLoginDenied(c.Request.Context(), "invalid_credentials")
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{
		"username":   result.Account.Username,
		"expires_at": result.ExpiresAt,
	})
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	s.sessions.Clear(c)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
