package handler

import (
	"net/http"
	"strconv"

	"datasync/internal/model"
	"datasync/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc *service.StatsService }

func NewStatsHandler(svc *service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

// GET /api/stats/daily-status?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&category=1
func (h *StatsHandler) DailyStatus(c *gin.Context) {
	q := service.RangeQuery{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if raw := c.Query("category"); raw != "" {
		cat, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		q.Category = &cat
	}
	views, err := h.svc.DailyStatusRange(c.Request.Context(), c.GetInt("user_id"), q)
	if err != nil {
		writeError(c, err)
		return
	}
	if views == nil {
		views = []model.DailyStatusView{}
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/stats/dashboard
func (h *StatsHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
