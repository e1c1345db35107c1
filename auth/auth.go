package auth

import (
	"cueu-api/auth/handlers"
	"cueu-api/auth/middleware"
	"cueu-api/auth/models"
	leagueServices "cueu-api/league/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
	db      *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	memberService := leagueServices.NewMemberService(db)
	return &Module{
		Handler: handlers.NewAuthHandler(db, memberService),
		db:      db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout-all", middleware.JWTMiddleware(), m.Handler.LogoutAll)
		auth.POST("/reset-password/send-link", m.Handler.SendPasswordResetLink)
		auth.POST("/reset-password/confirm", m.Handler.ConfirmPasswordReset)
		auth.POST("/change-password", middleware.JWTMiddleware(), m.Handler.ChangePassword)
	}

	users := r.Group("/users")
	{
		users.GET("/me", middleware.JWTMiddleware(), m.Handler.Profile)
		users.GET("", middleware.JWTMiddleware(), middleware.RequireRole(m.db, models.RoleAdmin), m.Handler.GetUsers)
		users.PUT("/:id", middleware.JWTMiddleware(), m.Handler.UpdateUser)
		users.PATCH("/:id", middleware.JWTMiddleware(), m.Handler.PatchUser)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUserEmail(c *gin.Context) (string, bool) {
	return middleware.GetUserEmail(c)
}

func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return middleware.RequireRole(db, role)
}

func RequireAnyRole(db *gorm.DB, roles ...string) gin.HandlerFunc {
	return middleware.RequireAnyRole(db, roles...)
}
