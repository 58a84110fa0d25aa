package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/hireai/portal/config"
	"github.com/hireai/portal/internal/api/handlers"
	"github.com/hireai/portal/internal/api/middleware"
	"github.com/hireai/portal/internal/api/routes"
	"github.com/hireai/portal/internal/cache"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/logger"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()
	ctx := context.Background()

	backend, drafts := initStores(ctx, log, cfg)

	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		up, err := storage.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSPublic)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer up.Close()
		uploader = up
		log.WithField("bucket", cfg.GCSBucket).Info("photo uploads enabled")
	}

	api := client.New(cfg.APIBaseURL, client.WithTimeout(cfg.APITimeout))

	ids := services.NewIdentityService(api, backend, drafts)
	wz := services.NewWizardService(drafts, api, cfg.WizardTTL)
	jobs := services.NewJobService(api)
	candidates := services.NewCandidateService(api, uploader, wz)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	cc := cors.DefaultConfig()
	cc.AllowOrigins = cfg.CORSOrigins
	cc.AllowCredentials = true
	cc.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-Id"}
	cc.ExposeHeaders = []string{"Location", "Retry-After", "X-Request-Id"}
	r.Use(cors.New(cc))

	routes.RegisterRoutes(r, routes.Deps{
		Identity:         ids,
		Auth:             handlers.NewAuthHandler(ids),
		Session:          handlers.NewSessionHandler(ids),
		Jobs:             handlers.NewJobHandler(jobs),
		Candidates:       handlers.NewCandidateHandler(candidates),
		CandidateWizard:  handlers.NewWizardHandler(wz, services.FlowCandidate),
		RecruiterProfile: handlers.NewWizardHandler(wz, services.FlowRecruiter),
		CookieSecure:     cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

// initStores picks the local storage backend. The draft cache uses Redis
// whenever Redis is available.
func initStores(ctx context.Context, log *logrus.Logger, cfg config.Config) (storage.Backend, cache.Cache) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage; sessions are lost on restart")
		return storage.NewMemoryBackend(), cache.NewMemoryCache()

	case config.BackendPostgres:
		if err := config.InitPostgres(); err != nil {
			log.WithError(err).Fatal("PostgreSQL init error")
		}
		pg := storage.NewPostgresBackend(config.PostgresDB)
		if err := pg.Migrate(ctx); err != nil {
			log.WithError(err).Fatal("local_storage migration error")
		}
		log.Info("PostgreSQL connected")

		if err := config.InitRedis(); err != nil {
			log.WithError(err).Warn("Redis unavailable; drafts kept in memory")
			return pg, cache.NewMemoryCache()
		}
		return pg, cache.NewRedisCache(config.RedisClient)

	default:
		if err := config.InitRedis(); err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		log.Info("Redis connected")
		return storage.NewRedisBackend(config.RedisClient, cfg.SessionTTL), cache.NewRedisCache(config.RedisClient)
	}
}
