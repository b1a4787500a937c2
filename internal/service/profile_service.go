package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
	"github.com/ignatzorin/family-budget-backend/internal/validation"
)

// ProfileRepo описывает зависимости ProfileService от хранилища.
type ProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string, avatarURL *string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
}

// ProfileService управляет профилем пользователя.
type ProfileService struct {
	repo ProfileRepo
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(repo ProfileRepo) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get возвращает профиль пользователя.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Update изменяет имя и аватар пользователя.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, fullName string, avatarURL *string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if err := s.repo.UpdateProfile(ctx, userID, fullName, avatarURL); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}

// SetAvatar сохраняет ссылку на загруженный аватар.
func (s *ProfileService) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.User, error) {
	if err := s.repo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, userID)
}
