package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/groupfit/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Profile  *apiHandler.ProfileHandler
	Task     *apiHandler.TaskHandler
	Grouping *apiHandler.GroupingHandler
	Calendar *apiHandler.CalendarHandler
	Filter   *apiHandler.FilterHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.GET("/api/v1/tasks/search", authMiddleware(handlers.Task.SearchTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/groupings", authMiddleware(handlers.Grouping.GetGroupings))
	r.POST("/api/v1/groupings", authMiddleware(handlers.Grouping.CreateGrouping))
	r.PUT("/api/v1/groupings/{id}", authMiddleware(handlers.Grouping.RenameGrouping))
	r.POST("/api/v1/groupings/{id}/members", authMiddleware(handlers.Grouping.AddMembers))
	r.POST("/api/v1/groupings/{id}/select", authMiddleware(handlers.Grouping.SelectGrouping))
	r.DELETE("/api/v1/groupings/selection", authMiddleware(handlers.Grouping.ClearSelection))
	r.GET("/api/v1/groupings/selection/members", authMiddleware(handlers.Grouping.GetMembers))

	r.GET("/api/v1/calendar/events", authMiddleware(handlers.Calendar.GetEvents))
	r.GET("/api/v1/calendar/marked", authMiddleware(handlers.Calendar.GetMarkedDates))
	r.GET("/api/v1/calendar/day/{date}", authMiddleware(handlers.Calendar.GetDay))
	r.GET("/api/v1/agenda", authMiddleware(handlers.Calendar.GetAgenda))

	r.GET("/api/v1/filters", authMiddleware(handlers.Filter.GetFilters))
	r.PUT("/api/v1/filters", authMiddleware(handlers.Filter.SetFilters))
	r.POST("/api/v1/filters/toggle/{id}", authMiddleware(handlers.Filter.ToggleFilter))
	r.GET("/api/v1/filters/period", authMiddleware(handlers.Filter.GetPeriod))
	r.PUT("/api/v1/filters/period", authMiddleware(handlers.Filter.SetPeriod))

	return r
}
