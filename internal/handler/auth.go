package handler

import (
	"net/http"
	"time"

	"datasync/internal/logger"
	"datasync/internal/middleware"
	"datasync/internal/model"
	"datasync/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	secret []byte
	ttl    time.Duration
}

func NewAuthHandler(auth *service.AuthService, secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret, ttl: ttl}
}

// POST /api/token  body: {"username":"...","password":"..."} or form fields
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username, "err", err)
		writeError(c, err)
		return
	}

	token, exp, err := middleware.IssueToken(h.secret, u.ID, u.Username, h.ttl)
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("login.ok", "uid", u.ID, "username", u.Username)

	c.JSON(http.StatusOK, model.Token{AccessToken: token, TokenType: "bearer", ExpiresAt: exp})
}
