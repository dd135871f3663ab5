package main

import (
	"log"

	"github.com/CareLoop-AI/CareLoopAI/config"
	"github.com/CareLoop-AI/CareLoopAI/handlers"
	"github.com/CareLoop-AI/CareLoopAI/middleware"
	"github.com/CareLoop-AI/CareLoopAI/models"
	"github.com/CareLoop-AI/CareLoopAI/routes"
	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	questionStore := services.NewQuestionStore(db)
	rateLimiter := services.NewRateLimiter(questionStore, cfg.QuestionsPerDay, cfg.QuestionsPerHour)
	mailSender := services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	emailService := services.NewEmailService(mailSender, cfg.SupportEmails, cfg.AppName)
	nlpService := services.NewNLPService(cfg.NLPServiceURL, redisClient, cfg.AnswerCacheTTL)

	// Initialize admin event hub
	hub := services.NewHub()
	go hub.Run()

	questionService := services.NewQuestionService(questionStore, rateLimiter, emailService, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	chatBotHandler := handlers.NewChatBotHandler(nlpService)

	if cfg.AdminAPIKey == "" {
		log.Println("WARNING: ADMIN_API_KEY is not set; admin endpoints are unauthenticated")
	}

	// Setup Gin router
	router := gin.Default()

	// Add CORS and request-id middleware
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Setup routes
	routes.SetupRoutes(router, questionHandler, chatBotHandler, authHandler, authService, hub, cfg.AdminAPIKey, cfg.BurstPerSecond)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
