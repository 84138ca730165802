package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"fiture/adapters/explain"
	"fiture/adapters/model"
	"fiture/app"
	"fiture/domain/coach"
	"fiture/domain/life"
	"fiture/internal"
	"fiture/internal/cache"
	"fiture/internal/config"
	"fiture/internal/dataset"
	"fiture/ports"
	"fiture/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	pipeline, err := buildPipeline(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to wire prediction pipeline: %v", err)
	}

	server := ui.NewServer(pipeline, logger)
	logger.Info("listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildPipeline loads the model, background samples, and rule library, and
// wires the coaching pipeline with an optional redis card cache.
func buildPipeline(cfg *config.Config, logger *internal.Logger) (*app.CoachPipeline, error) {
	m, err := model.Load(cfg.Paths.ModelFile)
	if err != nil {
		return nil, err
	}
	aligner, err := life.NewFeatureAligner(m.Columns)
	if err != nil {
		return nil, err
	}
	background, err := dataset.ReadMatrix(cfg.Paths.BackgroundCS, m.Columns)
	if err != nil {
		return nil, err
	}
	explainer, err := explain.NewEngine(m, background, 0, cfg.Synth.Seed)
	if err != nil {
		return nil, err
	}
	lib, err := coach.LoadLibrary(cfg.Paths.RulesFile)
	if err != nil {
		return nil, err
	}

	var cardCache ports.CardCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		cardCache = cache.NewCardCache(client)
		logger.Info("card cache enabled at %s", cfg.Redis.Addr)
	}

	return app.NewCoachPipeline(m, explainer, aligner, lib, cardCache, logger), nil
}
