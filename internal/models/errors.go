package models

import "errors"

var (
	// ErrValidation: входные данные отсутствуют или некорректны.
	ErrValidation = errors.New("validation error")
	// ErrInvalidCredentials возвращается и для неизвестного email, и для неверного пароля.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailAlreadyInUse: пользователь с таким email уже существует.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrNotFound: запись не найдена в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrNotFoundOrNotOwned: удаляемая запись отсутствует или принадлежит другому пользователю.
	ErrNotFoundOrNotOwned = errors.New("not found or not owned")
	// ErrUpstreamUnavailable: внешний сервис поиска продуктов недоступен или ответил некорректно.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUnauthorized: токен не прошёл проверку или выдан другому пользователю.
	ErrUnauthorized = errors.New("unauthorized")
)
