package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/CareLoop-AI/CareLoopAI/models"
	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// SubmitQuestion handles POST /questions. Validation failures answer 400,
// rate-limit rejections 429, anything unanticipated 500 with a generic
// message - internal detail stays in the log.
func (h *QuestionHandler) SubmitQuestion(c *gin.Context) {
	var req services.QuestionSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Validation Error", err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Received question submission from email: %s", req.Email)

	response, err := h.questionService.SubmitQuestion(&req, c.Request)
	if err != nil {
		var rateLimitErr *services.RateLimitError
		if errors.As(err, &rateLimitErr) {
			respondError(c, "Rate Limit Exceeded", rateLimitErr.Reason, http.StatusTooManyRequests)
			return
		}
		log.Printf("Failed to submit question: %v", err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetMyQuestions handles GET /questions/mine?email= for a user's history.
func (h *QuestionHandler) GetMyQuestions(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, "Validation Error", "email query parameter is required", http.StatusBadRequest)
		return
	}

	log.Printf("Fetching questions for email: %s", email)

	questions, err := h.questionService.GetQuestionsByEmail(email)
	if err != nil {
		log.Printf("Failed to fetch questions for %s: %v", email, err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetPendingQuestions handles GET /admin/questions/pending.
func (h *QuestionHandler) GetPendingQuestions(c *gin.Context) {
	questions, err := h.questionService.GetPendingQuestions()
	if err != nil {
		log.Printf("Failed to fetch pending questions: %v", err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// GetQuestionsByStatus handles GET /admin/questions?status=.
func (h *QuestionHandler) GetQuestionsByStatus(c *gin.Context) {
	status := models.QuestionStatus(c.Query("status"))
	if !models.ValidStatus(status) {
		respondError(c, "Validation Error", "unknown question status: "+string(status), http.StatusBadRequest)
		return
	}

	questions, err := h.questionService.GetQuestionsByStatus(status)
	if err != nil {
		log.Printf("Failed to fetch questions with status %s: %v", status, err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// UpdateQuestionStatus handles PATCH /admin/questions/:id/status.
func (h *QuestionHandler) UpdateQuestionStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, "Validation Error", "Invalid question ID", http.StatusBadRequest)
		return
	}

	status := models.QuestionStatus(c.Query("status"))
	if !models.ValidStatus(status) {
		respondError(c, "Validation Error", "unknown question status: "+string(status), http.StatusBadRequest)
		return
	}

	answeredBy := c.Query("answeredBy")

	log.Printf("Updating question %d to status: %s", id, status)

	updated, err := h.questionService.UpdateQuestionStatus(uint(id), status, answeredBy)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			respondError(c, "Not Found",
				"Question not found with ID: "+c.Param("id"), http.StatusNotFound)
			return
		}
		log.Printf("Failed to update question %d: %v", id, err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetStatistics handles GET /admin/statistics.
func (h *QuestionHandler) GetStatistics(c *gin.Context) {
	stats, err := h.questionService.GetStatistics()
	if err != nil {
		log.Printf("Failed to fetch question statistics: %v", err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetOldPendingQuestions handles GET /admin/questions/old-pending?days=.
func (h *QuestionHandler) GetOldPendingQuestions(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "3"))
	if err != nil || days < 0 {
		respondError(c, "Validation Error", "days must be a non-negative integer", http.StatusBadRequest)
		return
	}

	log.Printf("Fetching pending questions older than %d days", days)

	questions, err := h.questionService.GetOldPendingQuestions(days)
	if err != nil {
		log.Printf("Failed to fetch old pending questions: %v", err)
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, questions)
}
