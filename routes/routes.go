package routes

import (
	"log"
	"net/http"

	"github.com/CareLoop-AI/CareLoopAI/handlers"
	"github.com/CareLoop-AI/CareLoopAI/middleware"
	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	questionHandler *handlers.QuestionHandler,
	chatBotHandler *handlers.ChatBotHandler,
	authHandler *handlers.AuthHandler,
	authService *services.AuthService,
	hub *services.Hub,
	adminAPIKey string,
	burstPerSecond int,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
		}

		// FAQ routes
		faq := api.Group("/v1/faq")
		faq.Use(middleware.BurstGuard(burstPerSecond))
		{
			faq.POST("/questions", questionHandler.SubmitQuestion)
			faq.GET("/questions/mine", questionHandler.GetMyQuestions)
			faq.GET("/health", func(c *gin.Context) {
				c.String(http.StatusOK, "FAQ Service is running")
			})

			admin := faq.Group("/admin")
			admin.Use(middleware.AdminKey(adminAPIKey))
			{
				admin.GET("/questions/pending", questionHandler.GetPendingQuestions)
				admin.GET("/questions", questionHandler.GetQuestionsByStatus)
				admin.GET("/questions/old-pending", questionHandler.GetOldPendingQuestions)
				admin.PATCH("/questions/:id/status", questionHandler.UpdateQuestionStatus)
				admin.GET("/statistics", questionHandler.GetStatistics)
			}
		}

		// Chatbot routes
		chatbot := api.Group("/v1/chatbot")
		{
			chatbot.POST("/ask", chatBotHandler.AskQuestion)
			chatbot.GET("/topics", chatBotHandler.GetTopics)
		}
	}

	// WebSocket endpoint streaming question events to admin dashboards
	router.GET("/ws/admin", middleware.AdminKey(adminAPIKey), func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		// Register client with hub - this will handle all message processing
		hub.RegisterClient(conn)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
