package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ramishrazaza/IndiaTravel/config"
	"github.com/ramishrazaza/IndiaTravel/database"
	"github.com/ramishrazaza/IndiaTravel/handlers"
	"github.com/ramishrazaza/IndiaTravel/logger"
	"github.com/ramishrazaza/IndiaTravel/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	if err := database.Init(cfg.Database.DSN(), log); err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	gemini := services.NewGeminiClient(services.GeminiConfig{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		BaseURL:        cfg.Gemini.BaseURL,
		Timeout:        cfg.Gemini.Timeout(),
		WhatsAppNumber: cfg.Contact.WhatsAppNumber,
	}, log)
	if gemini.IsConfigured() {
		log.Info("Gemini generation enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		log.Warn("GEMINI_API_KEY not set, itineraries will use the rule-based planner")
	}

	rules := services.NewRulePlanner(services.DefaultKnowledgeBase(), cfg.Contact.WhatsAppNumber)
	planner := services.NewPlanner(gemini, rules, log)
	h := handlers.New(planner, log)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	allowedOrigins = append(allowedOrigins, cfg.Server.FrontendOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/ai-plan", h.GenerateAIPlan)
		api.POST("/bookings", h.SubmitBooking)
		api.GET("/plans/:id", h.GetPlan)
		api.GET("/plans/:id/pdf", h.DownloadPlanPDF)
	}

	log.Info("IndiaTravel backend starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
