// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrRegionInUse — регион нельзя удалить, пока на него ссылаются организации.
	ErrRegionInUse = errors.New("регион используется организациями")
	// ErrInvalidCredentials — неверные имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("неверные имя пользователя или пароль")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
)
