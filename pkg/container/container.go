package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/config"
	infraCache "vocalhub-backend/internal/infrastructure/cache"
	"vocalhub-backend/internal/infrastructure/database"
	"vocalhub-backend/internal/infrastructure/queue"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/pkg/cache"
	"vocalhub-backend/pkg/jwt"

	accountHandler "vocalhub-backend/internal/domains/account/handler"
	accountRepo "vocalhub-backend/internal/domains/account/repository"
	accountService "vocalhub-backend/internal/domains/account/service"
	assetHandler "vocalhub-backend/internal/domains/asset/handler"
	linkHandler "vocalhub-backend/internal/domains/link/handler"
	linkRepo "vocalhub-backend/internal/domains/link/repository"
	linkService "vocalhub-backend/internal/domains/link/service"
	moderationHandler "vocalhub-backend/internal/domains/moderation/handler"
	moderationRepo "vocalhub-backend/internal/domains/moderation/repository"
	moderationService "vocalhub-backend/internal/domains/moderation/service"
	profileHandler "vocalhub-backend/internal/domains/profile/handler"
	profileRepo "vocalhub-backend/internal/domains/profile/repository"
	profileService "vocalhub-backend/internal/domains/profile/service"
	songHandler "vocalhub-backend/internal/domains/song/handler"
	songRepo "vocalhub-backend/internal/domains/song/repository"
	songService "vocalhub-backend/internal/domains/song/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application, built once at startup
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	Storage     storage.AssetStore
	Images      *storage.ImageProcessor
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AccountRepo    accountRepo.Repository
	ProfileRepo    profileRepo.Repository
	ModerationRepo moderationRepo.Repository
	SongRepo       songRepo.Repository
	LinkRepo       linkRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AccountService    accountService.ServiceInterface
	ModerationService moderationService.ServiceInterface
	ProfileService    profileService.ServiceInterface
	SongService       songService.ServiceInterface
	LinkService       linkService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AccountHandler    *accountHandler.Handler
	ModerationHandler *moderationHandler.Handler
	ProfileHandler    *profileHandler.Handler
	SongHandler       *songHandler.Handler
	LinkHandler       *linkHandler.Handler
	AssetHandler      *assetHandler.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// STEP 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// STEP 2: infrastructure
	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 3-5: application layers
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Redis is not critical: listings fall back to the database
	c.Redis = infraCache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, "vocalhub:")

	// Asset storage
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = store
	c.Images = storage.NewImageProcessor()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Asset storage ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.AsynqClient = queue.NewClient(cfg.Redis)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AccountRepo = accountRepo.NewPostgresAccountRepository(pool)
	c.ProfileRepo = profileRepo.NewPostgresProfileRepository(pool)
	c.ModerationRepo = moderationRepo.NewPostgresModerationRepository(pool)
	c.SongRepo = songRepo.NewPostgresSongRepository(pool)
	c.LinkRepo = linkRepo.NewPostgresLinkRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.AccountService = accountService.NewAccountService(
		c.AccountRepo,
		c.JWTManager,
		cfg.Access.RegistrationCode,
	)

	c.ModerationService = moderationService.NewModerationService(
		c.ModerationRepo,
		c.ProfileRepo,
		c.Storage,
		c.Cache,
		c.AsynqClient,
		cfg.Access.PublicCacheTTL,
	)

	c.SongService = songService.NewSongService(
		c.SongRepo,
		c.ProfileRepo,
		c.Storage,
		c.Images,
	)

	c.ProfileService = profileService.NewProfileService(
		c.ProfileRepo,
		c.ModerationService,
		c.SongService,
		c.Storage,
		c.Images,
	)

	c.LinkService = linkService.NewLinkService(c.LinkRepo)
}

func (c *Container) initHandlers() {
	maxUpload := int64(c.Config.App.MaxUploadMB) << 20

	c.AccountHandler = accountHandler.NewHandler(c.AccountService)
	c.ModerationHandler = moderationHandler.NewHandler(c.ModerationService, maxUpload)
	c.ProfileHandler = profileHandler.NewHandler(c.ProfileService)
	c.SongHandler = songHandler.NewHandler(c.SongService, maxUpload)
	c.LinkHandler = linkHandler.NewHandler(c.LinkService)
	c.AssetHandler = assetHandler.NewHandler(c.Storage)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases every connection; safe on a partially built container
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Cleanup completed")
}
