package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"barriotips/api/internal/config"
	"barriotips/api/internal/middleware"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
	"barriotips/api/internal/security"
	"barriotips/api/internal/service"
	"barriotips/api/internal/storage"
)

type HandlerSet struct {
	log           zerolog.Logger
	cfg           *config.AppConfig
	tokens        *security.TokenService
	authService   *service.AuthService
	tipService    *service.TipService
	uploadService *service.UploadService
	users         *repository.UserRepository
	categories    *repository.CategoryRepository
	barrios       *repository.BarrioRepository
	db            *pgxpool.Pool
	cache         *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	tipRepo := repository.NewTipRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	barrioRepo := repository.NewBarrioRepository(db)

	tokens := security.NewTokenService(cfg.Security.TokenSecret, cfg.Security.TokenTTL)
	auth := service.NewAuthService(userRepo, tokens, log)
	tips := service.NewTipService(tipRepo, cache, cfg.Cache.TipListTTL, log)
	upload := service.NewUploadService(store, cfg.Storage, log)

	return HandlerSet{
		log:           log,
		cfg:           cfg,
		tokens:        tokens,
		authService:   auth,
		tipService:    tips,
		uploadService: upload,
		users:         userRepo,
		categories:    categoryRepo,
		barrios:       barrioRepo,
		db:            db,
		cache:         cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authenticated := middleware.Authenticate(h.tokens)
	adminOnly := middleware.RequireRoles(h.users, models.UserRoleAdmin, models.UserRoleSuperAdmin)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)

		auth.GET("/verify", authenticated, h.Verify)
		auth.PUT("/users/password", authenticated, h.ChangePassword)
		auth.GET("/users/:userId", authenticated, h.GetUser)
		auth.PUT("/users/roles/:userId",
			authenticated,
			middleware.RequireRoles(h.users, models.UserRoleSuperAdmin),
			h.UpdateRole,
		)
		auth.GET("/favourites", authenticated, h.ListFavourites)
		auth.PUT("/favourites/:tipId", authenticated, h.ToggleFavourite)
	}

	tips := router.Group("/tips")
	{
		tips.GET("", h.ListTips)
		tips.GET("/:tipId", h.GetTip)
		tips.POST("", authenticated, adminOnly, h.CreateTip)
		tips.PUT("/:tipId", authenticated, adminOnly, h.UpdateTip)
		tips.DELETE("/:tipId", authenticated, adminOnly, h.DeleteTip)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:categoryId", h.GetCategory)
		categories.POST("", authenticated, adminOnly, h.CreateCategory)
		categories.PUT("/:categoryId", authenticated, adminOnly, h.UpdateCategory)
		categories.DELETE("/:categoryId", authenticated, adminOnly, h.DeleteCategory)
	}

	barrios := router.Group("/barrios")
	{
		barrios.GET("", h.ListBarrios)
		barrios.GET("/:barrioId", h.GetBarrio)
		barrios.POST("", authenticated, adminOnly, h.CreateBarrio)
		barrios.PUT("/:barrioId", authenticated, adminOnly, h.UpdateBarrio)
		barrios.DELETE("/:barrioId", authenticated, adminOnly, h.DeleteBarrio)
	}

	router.POST("/media/image", authenticated, adminOnly, h.UploadImage)
}
