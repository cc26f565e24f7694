// Package jwt реализует генерацию и парсинг JWT токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов, выданных пользователю.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать токен для идентификатора пользователя,
// а также разбирать токен и извлекать из него данные.
type Maker interface {
	// GenerateToken создаёт токен для пользователя и возвращает момент его истечения
	GenerateToken(userUID string) (string, time.Time, error)
	// ParseToken возвращает *CustomClaims для валидного токена
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
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
