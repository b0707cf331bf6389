package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/talentbridge/talentbridge/config"
	"github.com/talentbridge/talentbridge/internal/api/handlers"
	"github.com/talentbridge/talentbridge/internal/api/middleware"
	"github.com/talentbridge/talentbridge/internal/api/routes"
	"github.com/talentbridge/talentbridge/internal/cache"
	"github.com/talentbridge/talentbridge/internal/logger"
	"github.com/talentbridge/talentbridge/internal/matching"
	"github.com/talentbridge/talentbridge/internal/models"
	pgrepo "github.com/talentbridge/talentbridge/internal/repositories/postgres"
	"github.com/talentbridge/talentbridge/internal/services"
	"github.com/talentbridge/talentbridge/internal/taxonomy"
	"github.com/talentbridge/talentbridge/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.Candidate{},
		&models.Requirement{},
		&models.MatchRecord{},
		&models.InterviewFeedback{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// Redis is optional: without it match runs just recompute every time.
	var resultCache cache.Cache
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URI") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		resultCache = cache.NewRedisCache(config.RedisClient)
		l.Info("Redis connected")
	} else {
		l.Warn("REDIS_ADDR not set, match result caching disabled")
	}

	matchCfg, err := config.LoadMatching()
	if err != nil {
		log.Fatalf("matching config error: %v", err)
	}

	engine := matching.NewEngine(taxonomy.NewStatic())

	svc, err := services.NewMatchingService(services.MatchingDeps{
		Engine:       engine,
		Matches:      pgrepo.NewMatchRepo(config.PostgresDB),
		Candidates:   pgrepo.NewCandidateRepo(config.PostgresDB),
		Requirements: pgrepo.NewRequirementRepo(config.PostgresDB),
		Feedback:     pgrepo.NewFeedbackRepo(config.PostgresDB),
		Cache:        resultCache,
		CacheTTL:     matchCfg.CacheTTL,
		Pool:         &workers.MatchWorkerPool{NumWorkers: matchCfg.Workers, Logger: l},
		Logger:       l,
		Weights:      matchCfg.Weights,
	})
	if err != nil {
		log.Fatalf("service init error: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Match: handlers.NewMatchHandler(svc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
