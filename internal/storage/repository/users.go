package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/nutriede/internal/models"
)

const uniqueViolation = "23505"

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Нарушение уникальности username или email возвращается как ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"

	var role sql.NullString
	if user.Role != "" {
		role = sql.NullString{String: user.Role, Valid: true}
	}

	var newID int64
	query := `INSERT INTO "user" (username, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, role).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UserExists сообщает, занят ли username или email.
func (s *Storage) UserExists(ctx context.Context, username, email string) (bool, error) {
	const op = "storage.UserExists"

	var exists bool
	query := `SELECT EXISTS (
			      SELECT 1 FROM "user" WHERE username = $1 OR email = $2
			  )`
	if err := s.DB.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT id, username, email, password_hash, role, created_at
			  FROM "user"
			  WHERE email = $1`
	return s.getUser(ctx, op, query, email)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	u := &models.User{}
	var role sql.NullString
	err := s.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = role.String
	return u, nil
}
