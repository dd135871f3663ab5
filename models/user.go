package models

import (
	"time"
)

type AuthProviderType string

const (
	ProviderEmail  AuthProviderType = "EMAIL"
	ProviderGoogle AuthProviderType = "GOOGLE"
)

type User struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Username     string           `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string           `json:"-"`
	ProviderID   string           `json:"provider_id" gorm:"index:idx_provider_id_provider_type"`
	ProviderType AuthProviderType `json:"provider_type" gorm:"index:idx_provider_id_provider_type"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
