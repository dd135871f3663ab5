package services

import (
	"fmt"
	"log"
	"time"
)

// RateLimiter checks a new submission against two independent sliding
// windows: questions per email over the last 24 hours and questions per IP
// over the last hour. Counts run against persisted history, so the limits
// hold across restarts and across instances sharing one database.
type RateLimiter struct {
	store            *QuestionStore
	questionsPerDay  int
	questionsPerHour int
}

func NewRateLimiter(store *QuestionStore, questionsPerDay, questionsPerHour int) *RateLimiter {
	return &RateLimiter{
		store:            store,
		questionsPerDay:  questionsPerDay,
		questionsPerHour: questionsPerHour,
	}
}

// Check returns a *RateLimitError when either window is already full.
//
// The count and the subsequent insert are not one transaction: two
// concurrent submissions from the same identity can both pass the count and
// both insert, briefly admitting a record over the limit. Exact enforcement
// would need a per-identity serialization point in front of this.
func (r *RateLimiter) Check(email, ip string) error {
	oneDayAgo := time.Now().Add(-24 * time.Hour)
	oneHourAgo := time.Now().Add(-1 * time.Hour)

	fromEmailToday, err := r.store.CountByEmailSince(email, oneDayAgo)
	if err != nil {
		return err
	}
	if fromEmailToday >= int64(r.questionsPerDay) {
		log.Printf("Rate limit exceeded for email: %s", email)
		return &RateLimitError{
			Reason: fmt.Sprintf("You have exceeded the daily limit of %d questions. Please try again tomorrow.",
				r.questionsPerDay),
		}
	}

	fromIPLastHour, err := r.store.CountByIPSince(ip, oneHourAgo)
	if err != nil {
		return err
	}
	if fromIPLastHour >= int64(r.questionsPerHour) {
		log.Printf("Rate limit exceeded for IP: %s", ip)
		return &RateLimitError{
			Reason: "Too many questions submitted. Please wait an hour before submitting again.",
		}
	}

	return nil
}
