// Package models содержит доменные модели трекера калорий: пользователя,
// запись дневника питания, результат поиска продукта и дневную сумму калорий.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная, хранится как введена)
	PasswordHash string    // bcrypt-хэш пароля пользователя
	CreatedAt    time.Time // Дата регистрации
}

// AuthToken описывает подписанный токен доступа, выданный после входа.
type AuthToken struct {
	Token     string
	UserUID   string
	ExpiresAt time.Time
}
