package services

import (
	"log"
	"net/http"
	"time"

	"github.com/CareLoop-AI/CareLoopAI/models"
)

// QuestionService runs the submission pipeline: resolve origin, rate-limit,
// persist, then schedule notifications. The request path is synchronous up
// through persistence; notification delivery runs on its own goroutines and
// its outcome is never visible in the submission result.
type QuestionService struct {
	store       *QuestionStore
	rateLimiter *RateLimiter
	emails      *EmailService
	hub         *Hub
}

func NewQuestionService(store *QuestionStore, rateLimiter *RateLimiter, emails *EmailService, hub *Hub) *QuestionService {
	return &QuestionService{
		store:       store,
		rateLimiter: rateLimiter,
		emails:      emails,
		hub:         hub,
	}
}

type QuestionSubmitRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Question string `json:"question" binding:"required,min=10,max=1000"`
}

type QuestionSubmitResponse struct {
	ID          uint      `json:"id"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
	Success     bool      `json:"success"`
}

// SubmitQuestion accepts a new question. It fails with a *RateLimitError
// when either window is full; once the record is persisted, nothing that
// happens afterwards (mail transport down, no admin dashboards connected)
// turns the submission into a failure.
func (s *QuestionService) SubmitQuestion(req *QuestionSubmitRequest, httpReq *http.Request) (*QuestionSubmitResponse, error) {
	userIP := ExtractClientIP(httpReq)
	userAgent := httpReq.Header.Get("User-Agent")

	if err := s.rateLimiter.Check(req.Email, userIP); err != nil {
		return nil, err
	}

	question := &models.Question{
		Email:     req.Email,
		Question:  req.Question,
		Status:    models.StatusPending,
		UserIP:    userIP,
		UserAgent: userAgent,
	}

	saved, err := s.store.Save(question)
	if err != nil {
		return nil, err
	}
	log.Printf("New question submitted - ID: %d, Email: %s", saved.ID, saved.Email)

	// Fire and forget: each notification gets its own goroutine so a
	// failure in one cannot touch the other or this request.
	go s.emails.SendNewQuestionNotification(saved)
	go s.emails.SendConfirmationToUser(saved)
	if s.hub != nil {
		s.hub.BroadcastNewQuestion(saved)
	}

	return &QuestionSubmitResponse{
		ID:          saved.ID,
		Message:     "Your question has been submitted successfully. We'll get back to you soon!",
		SubmittedAt: saved.CreatedAt,
		Success:     true,
	}, nil
}

func (s *QuestionService) GetQuestionsByStatus(status models.QuestionStatus) ([]models.Question, error) {
	return s.store.FindByStatus(status)
}

// GetPendingQuestions returns the admin work queue: everything still
// pending or being worked on.
func (s *QuestionService) GetPendingQuestions() ([]models.Question, error) {
	return s.store.FindByStatusIn([]models.QuestionStatus{
		models.StatusPending,
		models.StatusInProgress,
	})
}

func (s *QuestionService) GetQuestionsByEmail(email string) ([]models.Question, error) {
	return s.store.FindByEmail(email)
}

func (s *QuestionService) GetOldPendingQuestions(daysOld int) ([]models.Question, error) {
	cutoff := time.Now().AddDate(0, 0, -daysOld)
	return s.store.FindPendingOlderThan(cutoff)
}

func (s *QuestionService) GetStatistics() (map[models.QuestionStatus]int64, error) {
	return s.store.Statistics()
}

// UpdateQuestionStatus is the admin lifecycle operation. It propagates
// ErrQuestionNotFound for unknown ids.
func (s *QuestionService) UpdateQuestionStatus(id uint, newStatus models.QuestionStatus, answeredBy string) (*models.Question, error) {
	updated, err := s.store.UpdateStatus(id, newStatus, answeredBy)
	if err != nil {
		return nil, err
	}
	log.Printf("Question %d transitioned to status: %s", updated.ID, updated.Status)

	if s.hub != nil {
		s.hub.BroadcastStatusChange(updated)
	}

	return updated, nil
}
