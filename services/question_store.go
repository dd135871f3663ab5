package services

import (
	"errors"
	"time"

	"github.com/CareLoop-AI/CareLoopAI/models"

	"gorm.io/gorm"
)

// QuestionStore owns the question table. All lifecycle mutation goes through
// Save and UpdateStatus; no other component writes question rows.
type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) Save(question *models.Question) (*models.Question, error) {
	if err := s.db.Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionStore) FindByID(id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionStore) FindByEmail(email string) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("email = ?", email).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionStore) FindByStatus(status models.QuestionStatus) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("status = ?", status).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionStore) FindByStatusIn(statuses []models.QuestionStatus) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionStore) CountByEmailSince(email string, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Question{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	return count, err
}

func (s *QuestionStore) CountByIPSince(ip string, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Question{}).
		Where("user_ip = ? AND created_at >= ?", ip, since).
		Count(&count).Error
	return count, err
}

// Statistics returns a count per status, one entry for each status that has
// at least one question.
func (s *QuestionStore) Statistics() (map[models.QuestionStatus]int64, error) {
	var rows []struct {
		Status models.QuestionStatus
		Count  int64
	}
	err := s.db.Model(&models.Question{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[models.QuestionStatus]int64, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

func (s *QuestionStore) FindPendingOlderThan(cutoff time.Time) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}

// UpdateStatus is the sole status-mutation path. A transition to ANSWERED
// stamps answered_at/answered_by; transitioning away later does not clear
// them, so the fields read as "has ever been answered" history.
func (s *QuestionStore) UpdateStatus(id uint, newStatus models.QuestionStatus, answeredBy string) (*models.Question, error) {
	question, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	question.Status = newStatus

	if newStatus == models.StatusAnswered {
		now := time.Now()
		question.AnsweredAt = &now
		question.AnsweredBy = &answeredBy
	}

	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}

	return question, nil
}
