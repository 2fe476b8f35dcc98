package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/gradeview-2025.net/internal/adapter/crypto"
	"gitlab.com/gradeview-2025.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/gradeview-2025.net/internal/adapter/postgres/userrepository"
	"gitlab.com/gradeview-2025.net/internal/adapter/redis/navstateport"
	"gitlab.com/gradeview-2025.net/internal/config"
	auth2 "gitlab.com/gradeview-2025.net/internal/core/services/auth"
	"gitlab.com/gradeview-2025.net/internal/core/services/filter"
	"gitlab.com/gradeview-2025.net/internal/core/services/review"
	logger2 "gitlab.com/gradeview-2025.net/internal/global/logger"
	http2 "gitlab.com/gradeview-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting submission review service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})

	// SECONDARY PORTS
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger, sysCfg.PostgresConfig.Schema)
	userPort := userrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	navStore := navstateport.NewNavStateStore(redisClient, logger, sysCfg.NavStateConfig.TTL)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	listSvc := filter.NewListService(submissionRepo, navStore, logger)
	reviewSvc := review.NewReviewService(submissionRepo, userPort, logger)
	ggAuth := auth2.NewGoogleAuthService(userPort, jwtProvider, sysCfg.GGAuthConfig)
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	serviceProvider := http2.NewServiceProvider(listSvc, reviewSvc, ggAuth, localAuth)

	//server
	httServer := http2.NewServer(sysCfg.ServerConfig.Port, "gradeview", *serviceProvider, logger)
	err = httServer.Init()
	if err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	httServer.Stop()
	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close redis", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
