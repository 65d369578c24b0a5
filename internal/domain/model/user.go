package model

import "time"

// User — локальный пользователь приложения.
// Мутации реестра доступны только аутентифицированным пользователям.
type User struct {
	ID int64
	// Username — имя пользователя (уникальное).
	Username string
	// Email — email (уникальный).
	Email string
	// PasswordHash — bcrypt-хеш пароля.
	PasswordHash string
	CreatedAt    time.Time
}
