package league

import (
	"log"

	"cueu-api/league/cache"
	"cueu-api/league/cron"
	"cueu-api/league/handlers"
	"cueu-api/league/services"

	authMiddleware "cueu-api/auth/middleware"
	authModels "cueu-api/auth/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Module struct {
	MemberHandler       *handlers.MemberHandler
	MemberService       *services.MemberService
	MatchHandler        *handlers.MatchHandler
	MatchService        *services.MatchService
	SeasonHandler       *handlers.SeasonHandler
	SeasonService       *services.SeasonService
	NotificationHandler *handlers.NotificationHandler
	NotificationService *services.NotificationService
	StatsHandler        *handlers.StatsHandler
	StatsService        *services.StatsService
	ReminderService     *services.ReminderService
	Scheduler           *cron.Scheduler
	db                  *gorm.DB
}

func NewModule(db *gorm.DB, rdb *redis.Client) *Module {
	standingsCache := cache.NewStandingsCache(rdb)

	memberService := services.NewMemberService(db)
	memberHandler := handlers.NewMemberHandler(memberService, db)

	seasonService := services.NewSeasonService(db, standingsCache)
	seasonHandler := handlers.NewSeasonHandler(seasonService)

	notificationService := services.NewNotificationService(db)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	matchService := services.NewMatchService(db, seasonService, notificationService, standingsCache)
	matchHandler := handlers.NewMatchHandler(matchService, db)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	reminderService := services.NewReminderService(db, notificationService)
	scheduler := cron.NewScheduler(reminderService, seasonService, db)

	return &Module{
		MemberHandler:       memberHandler,
		MemberService:       memberService,
		MatchHandler:        matchHandler,
		MatchService:        matchService,
		SeasonHandler:       seasonHandler,
		SeasonService:       seasonService,
		NotificationHandler: notificationHandler,
		NotificationService: notificationService,
		StatsHandler:        statsHandler,
		StatsService:        statsService,
		ReminderService:     reminderService,
		Scheduler:           scheduler,
		db:                  db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	members := r.Group("/members")
	{
		members.GET("", m.MemberHandler.GetAllMembers)
		members.GET("/:id", m.MemberHandler.GetMember)
		members.GET("/:id/matches", m.MemberHandler.GetMemberMatches)
		members.PUT("/:id/skill-level", authMiddleware.JWTMiddleware(), m.MemberHandler.UpdateSkillLevel)
	}

	seasons := r.Group("/seasons")
	{
		seasons.GET("", m.SeasonHandler.GetSeasons)
		seasons.GET("/:id", m.SeasonHandler.GetSeason)
		seasons.GET("/:id/standings", m.SeasonHandler.GetStandings)
		seasons.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.SeasonHandler.CreateSeason)
		seasons.PATCH("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.SeasonHandler.UpdateSeason)
		seasons.POST("/:id/roster", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.SeasonHandler.AddToRoster)
		seasons.DELETE("/:id/roster/:memberId", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.SeasonHandler.RemoveFromRoster)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.GET("/:id/targets", m.MatchHandler.GetRackTargets)
		matches.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.MatchHandler.CreateMatch)
		matches.POST("/bye", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.MatchHandler.CreateByeMatch)
		matches.POST("/:id/complete", authMiddleware.JWTMiddleware(), m.MatchHandler.CompleteMatch)
		matches.POST("/:id/forfeit", authMiddleware.JWTMiddleware(), m.MatchHandler.ForfeitMatch)
		matches.POST("/:id/bye", authMiddleware.JWTMiddleware(), m.MatchHandler.AcceptByeMatch)
	}

	notifications := r.Group("/notifications", authMiddleware.JWTMiddleware())
	{
		notifications.GET("", m.NotificationHandler.GetMyNotifications)
		notifications.POST("/:id/read", m.NotificationHandler.MarkRead)
		notifications.POST("/read-all", m.NotificationHandler.MarkAllRead)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for league background jobs
func (m *Module) StartScheduler() error {
	log.Println("Starting league module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping league module scheduler...")
	m.Scheduler.Stop()
}
