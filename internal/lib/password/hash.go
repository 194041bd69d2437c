// Package password реализует хеширование и проверку паролей пользователей на bcrypt.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, когда пароль не соответствует хэшу.
var ErrMismatch = errors.New("password does not match hash")

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при неверном пароле
// и обёрнутую ошибку bcrypt, если хэш повреждён.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// CompareDummy тратит на проверку столько же времени, сколько CompareHash,
// но всегда возвращает ErrMismatch. Вызывается, когда пользователь не найден,
// чтобы время ответа не выдавало существование e-mail.
func CompareDummy(externalPassword string) error {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("nutriede-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
	return fmt.Errorf("password.CompareDummy: %w", ErrMismatch)
}
