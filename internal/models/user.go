package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает участника семейного бюджета.
// FamilyID равен nil, пока пользователь не создал семью или не вступил в неё.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	AvatarURL    *string    `db:"avatar_url" json:"avatar_url,omitempty"`
	FamilyID     *uuid.UUID `db:"family_id" json:"family_id,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// HasFamily сообщает, состоит ли пользователь в семье.
func (u *User) HasFamily() bool {
	return u.FamilyID != nil && *u.FamilyID != uuid.Nil
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
