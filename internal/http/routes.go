package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	middleware "skill-market.com/skill-market/internal/http/middlewares"
	"skill-market.com/skill-market/pkg/constants"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.Metrics())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/users", h.RegisterUser)
	api.POST("/providers", h.RegisterProvider)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", middleware.Auth(h.auth))
	asUser := middleware.RequireRole(constants.RoleUser)
	asProvider := middleware.RequireRole(constants.RoleProvider)

	authed.GET("/auth/me", h.Me)
	authed.GET("/providers/me", h.ProviderProfile, asProvider)

	authed.GET("/tasks", h.ListTasks)
	authed.POST("/tasks", h.CreateTask, asUser)
	authed.GET("/tasks/:id", h.GetTask)
	authed.PUT("/tasks/:id", h.UpdateTask)
	authed.DELETE("/tasks/:id", h.DeleteTask)
	authed.GET("/tasks/user/:userId", h.ListTasksByUser)
	authed.GET("/tasks/provider/:providerId", h.ListTasksByProvider)
	authed.POST("/tasks/:id/progress", h.RecordProgress)
	authed.GET("/tasks/:id/progress", h.ListProgress)
	authed.POST("/tasks/:id/complete", h.MarkProviderCompleted)
	authed.POST("/tasks/:id/accept", h.AcceptCompletion)
	authed.POST("/tasks/:id/reject", h.RejectCompletion)

	authed.POST("/offers", h.CreateOffer, asProvider)
	authed.GET("/offers/:id", h.GetOffer)
	authed.GET("/offers/task/:taskId", h.ListOffersByTask)
	authed.GET("/offers/provider/:providerId", h.ListOffersByProvider)
	authed.POST("/offers/:id/accept", h.AcceptOffer)
	authed.POST("/offers/:id/reject", h.RejectOffer)

	authed.POST("/skills", h.CreateSkill, asProvider)
	authed.GET("/skills", h.ListSkills)
	authed.GET("/skills/category/:category", h.ListSkillsByCategory)
	authed.GET("/skills/:id", h.GetSkill)
	authed.PUT("/skills/:id", h.UpdateSkill)
	authed.DELETE("/skills/:id", h.DeleteSkill)
	authed.GET("/skills/provider/:providerId", h.ListSkillsByProvider)
}
