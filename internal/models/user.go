// Package models содержит доменные типы приложения: пользователя внутреннего
// раздела и заявку, отправленную через контактную форму сайта.
package models

import "time"

// User представляет учётную запись внутреннего раздела (таблица "user").
type User struct {
	ID           int64     // Идентификатор, назначается базой
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная), по ней выполняется вход
	PasswordHash string    // bcrypt-хэш пароля
	Role         string    // Роль, например manager или user; пустая, если не задана
	CreatedAt    time.Time // Дата создания записи
}
