package handlers

import (
	"net/http"

	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
)

type ChatBotHandler struct {
	nlpService *services.NLPService
}

func NewChatBotHandler(nlpService *services.NLPService) *ChatBotHandler {
	return &ChatBotHandler{
		nlpService: nlpService,
	}
}

// AskQuestion handles POST /chatbot/ask. The NLP service degrades to a
// fallback answer internally, so this endpoint always answers 200.
func (h *ChatBotHandler) AskQuestion(c *gin.Context) {
	var req services.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Validation Error", err.Error(), http.StatusBadRequest)
		return
	}

	answer := h.nlpService.GetAnswer(c.Request.Context(), &req)
	c.JSON(http.StatusOK, answer)
}

// GetTopics handles GET /chatbot/topics.
func (h *ChatBotHandler) GetTopics(c *gin.Context) {
	c.JSON(http.StatusOK, h.nlpService.Topics())
}
