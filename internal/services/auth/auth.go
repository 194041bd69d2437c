// Package auth содержит логику входа во внутренний раздел: проверку пароля,
// выпуск и отзыв сессии, политику доступа и создание учётных записей.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/lib/jwt"
	"github.com/magabrotheeeer/nutriede/internal/lib/password"
	"github.com/magabrotheeeer/nutriede/internal/models"
	"github.com/magabrotheeeer/nutriede/internal/storage/repository"
)

var (
	// ErrInvalidCredentials неизвестный e-mail или неверный пароль. Эти случаи не различаются.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleDenied пользователь вошёл, но его роль не проходит политику доступа.
	ErrRoleDenied = errors.New("role is not allowed")
	// ErrSessionInvalid cookie отсутствует, подделана, просрочена или отозвана.
	ErrSessionInvalid = errors.New("session is invalid")
	// ErrPasswordMismatch пароль и подтверждение не совпадают.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrUserExists username или e-mail уже заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidUser не заполнены обязательные данные пользователя.
	ErrInvalidUser = errors.New("username, email and password are required")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// UserExists сообщает, занят ли username или email.
	UserExists(ctx context.Context, username, email string) (bool, error)
	// GetUserByEmail возвращает пользователя по e-mail или repository.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore хранит идентификаторы отозванных сессий.
type SessionStore interface {
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Principal пользователь, восстановленный из cookie сессии.
type Principal struct {
	ID        int64
	Username  string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Session результат успешного входа: подписанный токен и его владелец.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Principal Principal
}

// NewUser данные для создания учётной записи из CLI.
type NewUser struct {
	Username string `validate:"required,max=80"`
	Email    string `validate:"required,max=120"`
	Password string `validate:"required"`
	Confirm  string
	Role     string `validate:"max=40"`
}

// AuthService отвечает за вход, выход, проверку сессии и создание пользователей.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	jwtMaker jwt.Maker
	access   config.Access
	validate *validator.Validate
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, jwtMaker jwt.Maker, access config.Access) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		jwtMaker: jwtMaker,
		access:   access,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Allows сообщает, пускает ли политика доступа пользователя с ролью role.
func (s *AuthService) Allows(role string) bool {
	if !s.access.RoleRequired() {
		return true
	}
	return role != "" && role == s.access.RequiredRole
}

// Login проверяет пароль и выпускает сессию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*Session, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = password.CompareDummy(rawPassword)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.Allows(user.Role) {
		return nil, fmt.Errorf("%s: %w", op, ErrRoleDenied)
	}

	token, claims, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	principal := principalFromClaims(claims)
	return &Session{Token: token, ExpiresAt: principal.ExpiresAt, Principal: principal}, nil
}

// Authenticate восстанавливает пользователя из токена cookie.
// Подделанный, просроченный или отозванный токен даёт ErrSessionInvalid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	const op = "auth.Authenticate"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionInvalid)
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrSessionInvalid, err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionInvalid)
	}

	principal := principalFromClaims(claims)
	return &principal, nil
}

// Logout отзывает сессию до истечения её срока. Недействительный токен
// отзывать не нужно, это не ошибка.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	if token == "" {
		return nil
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.sessions.RevokeSession(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateUser хэширует пароль и сохраняет пользователя.
func (s *AuthService) CreateUser(ctx context.Context, nu NewUser) (int64, error) {
	const op = "auth.CreateUser"

	if nu.Password != nu.Confirm {
		return 0, fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	nu.Username = strings.TrimSpace(nu.Username)
	nu.Email = strings.TrimSpace(nu.Email)
	nu.Role = strings.TrimSpace(nu.Role)
	if err := s.validate.Struct(nu); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidUser, err)
	}

	exists, err := s.users.UserExists(ctx, nu.Username, nu.Email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
	}

	hashed, err := password.GetHash(nu.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.users.CreateUser(ctx, models.User{
		Username:     nu.Username,
		Email:        nu.Email,
		PasswordHash: hashed,
		Role:         nu.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func principalFromClaims(claims *jwt.CustomClaims) Principal {
	p := Principal{
		ID:        claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		SessionID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p
}
