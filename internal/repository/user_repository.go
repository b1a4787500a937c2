package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)

// UserRepository управляет таблицами users и sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, avatar_url, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, is_active, created_at, updated_at
	`
	if err := r.db.GetContext(ctx, user, query, user.Email, user.PasswordHash, user.FullName, user.AvatarURL); err != nil {
		return fmt.Errorf("user repository: create: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id: %w", err)
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email: %w", err)
	}
	return &user, nil
}

// UpdateProfile обновляет имя и аватар пользователя.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName string, avatarURL *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET full_name = $2, avatar_url = $3, updated_at = NOW() WHERE id = $1
	`, userID, fullName, avatarURL)
	if err != nil {
		return fmt.Errorf("user repository: update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetFamilyID привязывает пользователя к семье. Передайте nil, чтобы отвязать.
func (r *UserRepository) SetFamilyID(ctx context.Context, userID uuid.UUID, familyID *uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET family_id = $2, updated_at = NOW() WHERE id = $1
	`, userID, familyID)
	if err != nil {
		return fmt.Errorf("user repository: set family id: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListFamilyMembers возвращает ростер семьи.
func (r *UserRepository) ListFamilyMembers(ctx context.Context, familyID uuid.UUID) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	err := r.db.SelectContext(ctx, &members, `
		SELECT id, email, full_name, avatar_url FROM users WHERE family_id = $1 ORDER BY full_name
	`, familyID)
	if err != nil {
		return nil, fmt.Errorf("user repository: list family members: %w", err)
	}
	return members, nil
}

// CountFamilyMembers возвращает размер ростера семьи.
// Это знаменатель правила единогласия при голосовании.
func (r *UserRepository) CountFamilyMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE family_id = $1`, familyID); err != nil {
		return 0, fmt.Errorf("user repository: count family members: %w", err)
	}
	return count, nil
}

// UpdateLastLoginAt отмечает время последнего входа.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("user repository: update last login: %w", err)
	}
	return nil
}

// UpdateAvatar сохраняет путь к загруженному аватару.
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1
	`, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("user repository: update avatar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CreateSession сохраняет refresh сессию.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.GetContext(ctx, session, query,
		session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("user repository: create session: %w", err)
	}
	return nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		return fmt.Errorf("user repository: delete session: %w", err)
	}
	return nil
}

// ListSessions возвращает активные сессии пользователя.
func (r *UserRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT * FROM sessions WHERE user_id = $1 AND expires_at > NOW() ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("user repository: list sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSessionByID удаляет конкретную сессию пользователя.
func (r *UserRepository) DeleteSessionByID(ctx context.Context, sessionID, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("user repository: delete session by id: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteAllSessionsExcept удаляет все сессии пользователя, кроме текущей.
func (r *UserRepository) DeleteAllSessionsExcept(ctx context.Context, userID uuid.UUID, exceptRefreshToken string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE user_id = $1 AND refresh_token <> $2
	`, userID, exceptRefreshToken)
	if err != nil {
		return fmt.Errorf("user repository: delete all sessions: %w", err)
	}
	return nil
}
