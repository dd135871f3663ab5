package services

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_DailyEmailLimit(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 3, 100)
	now := time.Now()

	// N-1 prior submissions: the N-th attempt is still allowed
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-2*time.Hour))
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-1*time.Hour))

	if err := limiter.Check("a@b.com", "1.2.3.4"); err != nil {
		t.Fatalf("expected the 3rd submission to be allowed, got %v", err)
	}

	// N prior submissions: the (N+1)-th is rejected
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-30*time.Minute))

	err := limiter.Check("a@b.com", "9.9.9.9")
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}
	if rateLimitErr.Reason != "You have exceeded the daily limit of 3 questions. Please try again tomorrow." {
		t.Errorf("unexpected reason: %q", rateLimitErr.Reason)
	}
}

func TestRateLimiter_DailyLimitIgnoresOldSubmissions(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 2, 100)
	now := time.Now()

	// Outside the 24h window: must not count
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-25*time.Hour))
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-26*time.Hour))
	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-2*time.Hour))

	if err := limiter.Check("a@b.com", "1.2.3.4"); err != nil {
		t.Fatalf("expected submission to be allowed, got %v", err)
	}
}

func TestRateLimiter_HourlyIPLimit(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 100, 2)
	now := time.Now()

	// Different emails, same IP: the IP window is what matters
	seedQuestion(t, store, "first@b.com", "1.2.3.4", now.Add(-30*time.Minute))
	seedQuestion(t, store, "second@b.com", "1.2.3.4", now.Add(-20*time.Minute))

	err := limiter.Check("third@b.com", "1.2.3.4")
	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}
	if rateLimitErr.Reason != "Too many questions submitted. Please wait an hour before submitting again." {
		t.Errorf("unexpected reason: %q", rateLimitErr.Reason)
	}

	// Same email from another IP is still fine
	if err := limiter.Check("third@b.com", "5.6.7.8"); err != nil {
		t.Fatalf("expected submission from a fresh IP to be allowed, got %v", err)
	}
}

func TestRateLimiter_HourlyLimitIgnoresOldSubmissions(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 100, 1)
	now := time.Now()

	seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-61*time.Minute))

	if err := limiter.Check("b@b.com", "1.2.3.4"); err != nil {
		t.Fatalf("expected submission to be allowed, got %v", err)
	}
}

func TestRateLimiter_WindowRollsForward(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 5, 100)
	now := time.Now()

	for i := 0; i < 5; i++ {
		seedQuestion(t, store, "a@b.com", "1.2.3.4", now.Add(-time.Duration(i+1)*time.Hour))
	}

	if err := limiter.Check("a@b.com", "1.2.3.4"); err == nil {
		t.Fatal("expected rejection at the daily limit")
	}

	// Age the oldest record past the window edge and the next attempt passes
	var oldest struct{ ID uint }
	if err := store.db.Table("user_questions").Select("id").Order("created_at ASC").Limit(1).Scan(&oldest).Error; err != nil {
		t.Fatalf("failed to find oldest record: %v", err)
	}
	err := store.db.Table("user_questions").Where("id = ?", oldest.ID).
		Update("created_at", now.Add(-25*time.Hour)).Error
	if err != nil {
		t.Fatalf("failed to age record: %v", err)
	}

	if err := limiter.Check("a@b.com", "1.2.3.4"); err != nil {
		t.Fatalf("expected the rolled-forward window to allow a submission, got %v", err)
	}
}

func TestRateLimiter_ReasonsAreDistinct(t *testing.T) {
	store := NewQuestionStore(newTestDB(t))
	limiter := NewRateLimiter(store, 1, 1)
	now := time.Now()

	seedQuestion(t, store, "daily@b.com", "1.1.1.1", now.Add(-2*time.Hour))
	seedQuestion(t, store, "hourly@b.com", "2.2.2.2", now.Add(-10*time.Minute))

	dailyErr := limiter.Check("daily@b.com", "3.3.3.3")
	hourlyErr := limiter.Check("someone-else@b.com", "2.2.2.2")

	if dailyErr == nil || hourlyErr == nil {
		t.Fatalf("expected both rejections, got daily=%v hourly=%v", dailyErr, hourlyErr)
	}
	if dailyErr.Error() == hourlyErr.Error() {
		t.Errorf("expected distinguishable reasons, both were %q", dailyErr.Error())
	}
	if fmt.Sprint(dailyErr) == "" || fmt.Sprint(hourlyErr) == "" {
		t.Error("expected human-readable reasons")
	}
}
