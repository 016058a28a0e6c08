package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth  *AuthHandler
	User  *UserHandler
	Plan  *PlanHandler
	Stats *StatsHandler
}

// Register mounts the API on r. Everything but login and the health check
// goes through auth.
func Register(r *gin.Engine, auth gin.HandlerFunc, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/api/token", h.Auth.Login)

	api := r.Group("/api", auth)
	{
		api.GET("/users/me", h.User.Me)
		api.PUT("/users/me", h.User.UpdateMe)

		api.GET("/plans", h.Plan.List)
		api.POST("/plans", h.Plan.Create)
		api.GET("/plans/:id", h.Plan.Get)
		api.PUT("/plans/:id", h.Plan.Update)
		api.DELETE("/plans/:id", h.Plan.Delete)

		api.GET("/stats/daily-status", h.Stats.DailyStatus)
		api.GET("/stats/dashboard", h.Stats.Dashboard)
	}
}
