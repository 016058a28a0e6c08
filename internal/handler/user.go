package handler

import (
	"net/http"

	"datasync/internal/model"
	"datasync/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{ svc *service.UserService }

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.Me(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	u, err := h.svc.UpdateMe(c.Request.Context(), c.GetInt("user_id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
