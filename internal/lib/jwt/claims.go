package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer указывается в каждом выданном токене.
const Issuer = "calorie-tracker"

// ErrInvalidToken возвращается для подделанного, просроченного или чужого токена.
var ErrInvalidToken = errors.New("invalid token")

// CustomClaims описывает данные, хранящиеся в JWT.
// Идентификатор пользователя передаётся в стандартном поле Subject.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// UserUID возвращает идентификатор пользователя, которому выдан токен.
func (c *CustomClaims) UserUID() string {
	return c.Subject
}

// GenerateToken создает JWT токен для пользователя, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userUID string) (string, time.Time, error) {
	const op = "jwt.GenerateToken"
	if userUID == "" {
		return "", time.Time{}, fmt.Errorf("%s: empty subject", op)
	}

	now := j.now()
	expiresAt := now.Add(j.tokenTTL)
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return signed, expiresAt, nil
}

// ParseToken парсит JWT токен, проверяет его подпись, алгоритм, издателя и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
