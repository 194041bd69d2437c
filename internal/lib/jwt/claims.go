// Package jwt реализует выпуск и проверку подписанных токенов сессии.
//
// Токен кладётся в HttpOnly cookie и утверждает, что пользователь прошёл вход.
// Maker описывает операции, MakerImpl подписывает токены HS256 секретом приложения.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken выпускает токен для пользователя и возвращает его вместе с claims.
	GenerateToken(userID int64, username, role string) (string, *CustomClaims, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа и TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
