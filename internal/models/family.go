package models

import (
	"time"

	"github.com/google/uuid"
)

// Family задаёт рабочее пространство семьи. Все транзакции, категории,
// предложения и подписки привязаны к семье.
type Family struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	InviteCode string     `db:"invite_code" json:"invite_code"`
	CreatedBy  *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// FamilyMember содержит краткую информацию об участнике семьи для ростера.
type FamilyMember struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
}
