// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает исходный bcrypt-хеш с введённым паролем, проверяя их соответствие.
// EqualizeTiming выполняет холостое сравнение, когда пользователь не найден.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength: bcrypt учитывает не больше этого числа байт пароля.
const MaxLength = 72

// Cost задаёт стоимость bcrypt.
const Cost = 10

// ErrMismatch возвращается, если пароль не соответствует хэшу.
var ErrMismatch = errors.New("password mismatch")

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	if len(password) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, bcrypt.ErrPasswordTooLong)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при несовпадении,
// иначе — ошибку разбора хэша.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EqualizeTiming тратит столько же времени, сколько проверка реального хэша.
// Вызывается для неизвестного email, чтобы время ответа не выдавало существование аккаунта.
func EqualizeTiming(externalPassword string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("calorie-tracker-dummy"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
}
