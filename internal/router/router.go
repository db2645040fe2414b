package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/dayflow/backend/api/handler"
)

type Handlers struct {
	Schedule *apiHandler.ScheduleHandler
	Insights *apiHandler.InsightsHandler
	Pomodoro *apiHandler.PomodoroHandler
	Advisor  *apiHandler.AdvisorHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Schedule routes
	r.GET("/api/v1/schedule", handlers.Schedule.GetSchedule)
	r.POST("/api/v1/schedule", handlers.Schedule.CreateSchedule)
	r.POST("/api/v1/schedule/shift", handlers.Schedule.Shift)
	r.GET("/api/v1/schedule/summary", handlers.Schedule.Summary)
	r.GET("/api/v1/schedule/current", handlers.Schedule.CurrentTask)
	r.GET("/api/v1/schedule/next", handlers.Schedule.NextTask)

	// Task lifecycle routes
	r.POST("/api/v1/tasks", handlers.Schedule.CreateTask)
	r.POST("/api/v1/tasks/{id}/start", handlers.Schedule.StartTask)
	r.POST("/api/v1/tasks/{id}/pause", handlers.Schedule.PauseTask)
	r.POST("/api/v1/tasks/{id}/resume", handlers.Schedule.ResumeTask)
	r.POST("/api/v1/tasks/{id}/complete", handlers.Schedule.CompleteTask)
	r.POST("/api/v1/tasks/{id}/skip", handlers.Schedule.SkipTask)
	r.PUT("/api/v1/tasks/{id}/times", handlers.Schedule.UpdateTaskTimes)
	r.DELETE("/api/v1/tasks/{id}", handlers.Schedule.DeleteTask)

	// Pomodoro routes
	r.GET("/api/v1/pomodoro", handlers.Pomodoro.Status)
	r.POST("/api/v1/pomodoro/complete", handlers.Pomodoro.CompleteSlice)

	// Insights routes
	r.GET("/api/v1/stats", handlers.Insights.GetStats)
	r.GET("/api/v1/report", handlers.Insights.GetReport)
	r.GET("/api/v1/streak", handlers.Insights.GetStreak)
	r.POST("/api/v1/streak/evaluate", handlers.Insights.EvaluateStreak)

	// Advisor routes
	r.GET("/api/v1/advisor/context", handlers.Advisor.Context)
	r.POST("/api/v1/advisor/ask", handlers.Advisor.Ask)
	r.POST("/api/v1/advisor/validate", handlers.Advisor.Validate)
	r.POST("/api/v1/advisor/plan", handlers.Advisor.Plan)
	r.POST("/api/v1/advisor/optimize", handlers.Advisor.Optimize)

	return r
}
