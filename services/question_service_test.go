package services

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CareLoop-AI/CareLoopAI/models"
)

func newTestQuestionService(t *testing.T, sender MailSender, perDay, perHour int) (*QuestionService, *QuestionStore) {
	t.Helper()

	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, perDay, perHour)
	emails := NewEmailService(sender, []string{"support@careloop.ai"}, "CareLoop")
	return NewQuestionService(store, limiter, emails, nil), store
}

func TestQuestionService_SubmitQuestion(t *testing.T) {
	sender := &fakeSender{}
	service, store := newTestQuestionService(t, sender, 10, 5)

	r := httptest.NewRequest("POST", "/api/v1/faq/questions", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	r.Header.Set("User-Agent", "go-test")

	response, err := service.SubmitQuestion(&QuestionSubmitRequest{
		Email:    "a@b.com",
		Question: "Why is my order delayed?",
	}, r)
	if err != nil {
		t.Fatalf("SubmitQuestion() error: %v", err)
	}

	if !response.Success {
		t.Error("expected success response")
	}
	if response.ID == 0 {
		t.Error("expected an assigned question id")
	}
	if response.SubmittedAt.IsZero() {
		t.Error("expected a submission timestamp")
	}

	// Round trip: the record is the most recent entry for that email
	questions, err := store.FindByEmail("a@b.com")
	if err != nil {
		t.Fatalf("FindByEmail() error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 persisted question, got %d", len(questions))
	}

	saved := questions[0]
	if saved.Status != models.StatusPending {
		t.Errorf("expected status PENDING, got %s", saved.Status)
	}
	if saved.AnsweredAt != nil {
		t.Error("expected nil answered_at")
	}
	if saved.UserIP != "1.2.3.4" {
		t.Errorf("expected origin IP from X-Forwarded-For, got %q", saved.UserIP)
	}
	if saved.UserAgent != "go-test" {
		t.Errorf("expected captured user agent, got %q", saved.UserAgent)
	}
}

func TestQuestionService_SubmitQuestion_RateLimited(t *testing.T) {
	sender := &fakeSender{}
	service, store := newTestQuestionService(t, sender, 2, 100)
	now := time.Now()

	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-2*time.Hour))
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-1*time.Hour))

	r := httptest.NewRequest("POST", "/api/v1/faq/questions", nil)
	r.Header.Set("X-Forwarded-For", "9.9.9.9")

	_, err := service.SubmitQuestion(&QuestionSubmitRequest{
		Email:    "a@b.com",
		Question: "Why is my order delayed?",
	}, r)

	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}

	// A rejected submission must not persist
	questions, err := store.FindByEmail("a@b.com")
	if err != nil {
		t.Fatalf("FindByEmail() error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected the seeded 2 questions only, got %d", len(questions))
	}
}

func TestQuestionService_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	sender := &fakeSender{fail: true}
	service, store := newTestQuestionService(t, sender, 10, 5)

	r := httptest.NewRequest("POST", "/api/v1/faq/questions", nil)
	r.Header.Set("X-Forwarded-For", "1.2.3.4")

	response, err := service.SubmitQuestion(&QuestionSubmitRequest{
		Email:    "a@b.com",
		Question: "Why is my order delayed?",
	}, r)
	if err != nil {
		t.Fatalf("expected submission to succeed despite a failing transport, got %v", err)
	}
	if !response.Success {
		t.Error("expected success response")
	}

	// The record stays committed
	if _, err := store.FindByID(response.ID); err != nil {
		t.Errorf("expected persisted question, got %v", err)
	}
}

func TestQuestionService_UpdateQuestionStatus_NotFound(t *testing.T) {
	sender := &fakeSender{}
	service, _ := newTestQuestionService(t, sender, 10, 5)

	_, err := service.UpdateQuestionStatus(424242, models.StatusAnswered, "agent1")
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionService_GetPendingQuestions(t *testing.T) {
	sender := &fakeSender{}
	service, store := newTestQuestionService(t, sender, 10, 5)
	now := time.Now()

	pending := seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-2*time.Hour))
	inProgress := seedQuestion(t, store, "b@b.com", "1.2.3.4", now.Add(-1*time.Hour))
	archived := seedQuestion(t, store, "c@b.com", "1.2.3.4", now)

	if _, err := service.UpdateQuestionStatus(inProgress.ID, models.StatusInProgress, ""); err != nil {
		t.Fatalf("UpdateQuestionStatus() error: %v", err)
	}
	if _, err := service.UpdateQuestionStatus(archived.ID, models.StatusArchived, ""); err != nil {
		t.Fatalf("UpdateQuestionStatus() error: %v", err)
	}

	questions, err := service.GetPendingQuestions()
	if err != nil {
		t.Fatalf("GetPendingQuestions() error: %v", err)
	}

	if len(questions) != 2 {
		t.Fatalf("expected 2 questions in the work queue, got %d", len(questions))
	}
	if questions[0].ID != inProgress.ID || questions[1].ID != pending.ID {
		t.Errorf("expected [%d %d], got [%d %d]", inProgress.ID, pending.ID, questions[0].ID, questions[1].ID)
	}
}

func TestQuestionService_GetOldPendingQuestions(t *testing.T) {
	sender := &fakeSender{}
	service, store := newTestQuestionService(t, sender, 10, 5)
	now := time.Now()

	old := seedQuestion(t, store, "a@b.com", "1.2.3.4", now.AddDate(0, 0, -5))
	seedQuestion(t, store, "b@b.com", "1.2.3.4", now.Add(-time.Hour))

	questions, err := service.GetOldPendingQuestions(3)
	if err != nil {
		t.Fatalf("GetOldPendingQuestions() error: %v", err)
	}

	if len(questions) != 1 {
		t.Fatalf("expected 1 old pending question, got %d", len(questions))
	}
	if questions[0].ID != old.ID {
		t.Errorf("expected id %d, got %d", old.ID, questions[0].ID)
	}
}
