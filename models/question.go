package models

import (
	"time"

	"gorm.io/gorm"
)

type QuestionStatus string

const (
	StatusPending    QuestionStatus = "PENDING"
	StatusInProgress QuestionStatus = "IN_PROGRESS"
	StatusAnswered   QuestionStatus = "ANSWERED"
	StatusSpam       QuestionStatus = "SPAM"
	StatusArchived   QuestionStatus = "ARCHIVED"
)

// ValidStatus reports whether s is one of the known question statuses.
func ValidStatus(s QuestionStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAnswered, StatusSpam, StatusArchived:
		return true
	}
	return false
}

type Question struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Email      string         `json:"email" gorm:"not null;size:255;index"`
	Question   string         `json:"question" gorm:"not null"`
	Status     QuestionStatus `json:"status" gorm:"not null;index"`
	UserIP     string         `json:"user_ip" gorm:"column:user_ip"`
	UserAgent  string         `json:"user_agent"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	AnsweredAt *time.Time     `json:"answered_at"`
	AnsweredBy *string        `json:"answered_by"`
	Answer     *string        `json:"answer"`
}

func (Question) TableName() string {
	return "user_questions"
}

// BeforeCreate defaults the status so a record is never persisted without one.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.Status == "" {
		q.Status = StatusPending
	}
	return nil
}
