package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/alumni-portal-api/internal/constants"
	"github.com/yukikurage/alumni-portal-api/internal/middleware"
	"github.com/yukikurage/alumni-portal-api/internal/models"
	"github.com/yukikurage/alumni-portal-api/internal/services"
)

// Dependencies is everything the API routes need.
type Dependencies struct {
	Sessions sessions.Store
	Tokens   middleware.TokenParser
	Auth     *services.AuthService
	Users    *services.UserService
	Events   *services.EventService
	News     *services.NewsService
	Projects *services.ProjectService
	Members  *services.MemberService
	AI       *services.AIService
	Logger   *log.Logger
}

// RegisterRoutes mounts the /api tree on r.
func RegisterRoutes(r gin.IRouter, deps Dependencies) {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	userHandler := NewUserHandler(deps.Users, deps.Logger)
	eventHandler := NewEventHandler(deps.Events, deps.Logger)
	newsHandler := NewNewsHandler(deps.News, deps.AI, deps.Logger)
	projectHandler := NewProjectHandler(deps.Projects, deps.Logger)
	memberHandler := NewMemberHandler(deps.Members, deps.Logger)

	admin := middleware.RequireRole(constants.RoleAdmin)

	loadEvent := middleware.LoadEntity[models.Event](constants.ContextKeyEvent, "Event not found", deps.Events.Get, deps.Logger)
	loadNews := middleware.LoadEntity[models.News](constants.ContextKeyNews, "News article not found", deps.News.Get, deps.Logger)
	loadProject := middleware.LoadEntity[models.Project](constants.ContextKeyProject, "Project not found", deps.Projects.Get, deps.Logger)
	loadMember := middleware.LoadEntity[models.Member](constants.ContextKeyMember, "Member not found", deps.Members.Get, deps.Logger)

	api := r.Group("/api")
	api.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))
	api.Use(middleware.Session(deps.Tokens))
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", middleware.RequireAuth(), authHandler.GetSession)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Admin user management
		users := api.Group("/users")
		users.Use(admin)
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PATCH("/:id/role", userHandler.UpdateRole)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", loadEvent, eventHandler.GetEvent)
			events.POST("", admin, eventHandler.CreateEvent)
			events.PUT("/:id", admin, loadEvent, eventHandler.UpdateEvent)
			events.PATCH("/:id", admin, eventHandler.ToggleUpcoming)
			events.DELETE("/:id", admin, loadEvent, eventHandler.DeleteEvent)
		}

		news := api.Group("/news")
		{
			news.GET("", newsHandler.ListNews)
			news.POST("/excerpt", admin, newsHandler.GenerateExcerpt)
			news.GET("/:id", loadNews, newsHandler.GetNews)
			news.POST("", admin, newsHandler.CreateNews)
			news.PUT("/:id", admin, loadNews, newsHandler.UpdateNews)
			news.PATCH("/:id", admin, newsHandler.TogglePublished)
			news.DELETE("/:id", admin, loadNews, newsHandler.DeleteNews)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", loadProject, projectHandler.GetProject)
			projects.POST("", admin, projectHandler.CreateProject)
			projects.PUT("/:id", admin, loadProject, projectHandler.UpdateProject)
			projects.PATCH("/:id", admin, projectHandler.ToggleFinished)
			projects.DELETE("/:id", admin, loadProject, projectHandler.DeleteProject)
		}

		members := api.Group("/members")
		{
			members.GET("", memberHandler.ListMembers)
			members.GET("/register", middleware.RequireAuth(), memberHandler.GetOwnProfile)
			members.POST("/register", middleware.RequireAuth(), memberHandler.Register)
			members.POST("/update", middleware.RequireAuth(), memberHandler.Update)
			members.GET("/:id", loadMember, memberHandler.GetMember)
			members.DELETE("/:id", admin, loadMember, memberHandler.DeleteMember)
		}
	}
}
