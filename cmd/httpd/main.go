// Command httpd runs the complaint classification HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/classifier/internal/api"
	"github.com/complaintdesk/classifier/internal/classifier"
	"github.com/complaintdesk/classifier/internal/config"
	"github.com/complaintdesk/classifier/internal/database"
	"github.com/complaintdesk/classifier/internal/intake"
	"github.com/complaintdesk/classifier/internal/logger"
	"github.com/complaintdesk/classifier/internal/mlclient"
	"github.com/complaintdesk/classifier/internal/sentiment"
	"github.com/complaintdesk/classifier/internal/telemetry"
)

const defaultConfigPath = "config.yml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "classifier: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath(defaultConfigPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting complaint classification service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	tp := telemetry.NewProvider()

	db, err := database.NewPostgresConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     strconv.Itoa(cfg.Database.Port),
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := database.NewComplaintsRepository(db)

	// The model sidecar is optional; without it the department cascade
	// still runs and unmatched complaints resolve to Others.
	var predictor classifier.Predictor
	modelURL := ""
	if cfg.Model.Enabled {
		modelURL = cfg.Model.ServiceURL
		predictor = mlclient.NewClient(modelURL)
		log.Info("Model sidecar enabled", logger.String("url", modelURL))
	} else {
		log.Warn("Model sidecar disabled, unmatched complaints route to the default department")
	}

	router := classifier.NewRouter(predictor, log, tp)
	pipeline := classifier.NewPipeline(sentiment.NewAnalyzer(), router, log, tp)

	limiter := intake.NewRateLimiter(cfg.Intake.RateLimitRPS, cfg.Intake.RateLimitBurst, log)
	submitter := intake.NewService(pipeline, repo, cfg.Intake.DuplicateWindow, limiter, log, tp)

	handler := api.NewHandler(submitter, pipeline, repo, modelURL, log, tp)

	server := api.NewServer(&api.ServerConfig{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
	}, log, func(r *gin.Engine) {
		api.SetupRoutes(r, handler, cfg.Auth.JWTSecret, tp)
	})

	return server.RunWithGracefulShutdown(context.Background())
}
