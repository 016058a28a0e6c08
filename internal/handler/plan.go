package handler

import (
	"net/http"
	"strconv"

	"datasync/internal/model"
	"datasync/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct{ svc *service.PlanService }

func NewPlanHandler(svc *service.PlanService) *PlanHandler { return &PlanHandler{svc: svc} }

// GET /api/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if plans == nil {
		plans = []model.PersonalPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// POST /api/plans
func (h *PlanHandler) Create(c *gin.Context) {
	var req model.PlanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), c.GetInt("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), c.GetInt("user_id"), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var patch model.PlanPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.GetInt("user_id"), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.GetInt("user_id"), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func planID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
