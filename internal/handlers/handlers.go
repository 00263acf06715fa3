package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"photogrid/identity/internal/config"
	"photogrid/identity/internal/middleware"
	"photogrid/identity/internal/models"
	"photogrid/identity/internal/repository"
	"photogrid/identity/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	db          *pgxpool.Pool
	cache       *redis.Client
	sessions    *repository.SessionRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, tokens service.TokenMinter, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db, cfg.Security.BcryptCost)
	sessionRepo := repository.NewSessionRepository(db)
	auth := service.NewAuthService(userRepo, sessionRepo, tokens, cfg.Security.SessionTTL, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		db:          db,
		cache:       cache,
		sessions:    sessionRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.SessionStatus)

		protected := v1.Group("/auth")
		protected.Use(middleware.Auth(h.authService))
		protected.GET("/me", h.Me)
		protected.GET("/sessions", h.ListSessions)

		admin := v1.Group("/admin")
		admin.Use(
			middleware.Auth(h.authService),
			middleware.RequirePermissions(models.PermissionsAdmin),
		)
		admin.GET("/sessions/stats", h.SessionStats)
	}
}
