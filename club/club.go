package club

import (
	"cueu-api/club/handlers"
	"cueu-api/club/services"

	authMiddleware "cueu-api/auth/middleware"
	authModels "cueu-api/auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	NewsHandler  *handlers.NewsHandler
	NewsService  *services.NewsService
	EventHandler *handlers.EventHandler
	EventService *services.EventService
	db           *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	newsService := services.NewNewsService(db)
	newsHandler := handlers.NewNewsHandler(newsService)

	eventService := services.NewEventService(db)
	eventHandler := handlers.NewEventHandler(eventService)

	return &Module{
		NewsHandler:  newsHandler,
		NewsService:  newsService,
		EventHandler: eventHandler,
		EventService: eventService,
		db:           db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	news := r.Group("/news")
	{
		news.GET("", m.NewsHandler.GetNews)
		news.GET("/:slug", m.NewsHandler.GetNewsBySlug)
		news.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireAnyRole(m.db, authModels.RoleEditor, authModels.RoleAdmin), m.NewsHandler.CreateNews)
		news.PATCH("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireAnyRole(m.db, authModels.RoleEditor, authModels.RoleAdmin), m.NewsHandler.UpdateNews)
		news.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.NewsHandler.DeleteNews)
	}

	events := r.Group("/events")
	{
		events.GET("", m.EventHandler.GetUpcomingEvents)
		events.GET("/:id", m.EventHandler.GetEvent)
		events.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.EventHandler.CreateEvent)
		events.PATCH("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.EventHandler.UpdateEvent)
		events.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.EventHandler.DeleteEvent)
	}
}
