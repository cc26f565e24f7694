package graph

import (
	"errors"

	"github.com/magabrotheeeer/calorie-tracker/internal/models"
)

// Коды ошибок, передаваемые клиенту в extensions.code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailInUse         = "EMAIL_ALREADY_IN_USE"
	CodeNotFoundOrNotOwned = "NOT_FOUND_OR_NOT_OWNED"
	CodeUpstream           = "UPSTREAM_UNAVAILABLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeStorage            = "STORAGE_ERROR"
)

// Error описывает публичную ошибку GraphQL. Сообщение фиксировано и не содержит внутренних деталей.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions попадает в поле extensions ответа GraphQL.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
	}
}

var publicErrors = []struct {
	target error
	public *Error
}{
	{models.ErrValidation, &Error{Code: CodeValidation, Message: "invalid input"}},
	{models.ErrInvalidCredentials, &Error{Code: CodeInvalidCredentials, Message: "invalid email or password"}},
	{models.ErrEmailAlreadyInUse, &Error{Code: CodeEmailInUse, Message: "email already in use"}},
	{models.ErrNotFoundOrNotOwned, &Error{Code: CodeNotFoundOrNotOwned, Message: "food log entry not found"}},
	{models.ErrUpstreamUnavailable, &Error{Code: CodeUpstream, Message: "food search is temporarily unavailable"}},
	{models.ErrUnauthorized, &Error{Code: CodeUnauthorized, Message: "unauthorized"}},
}

var internalError = &Error{Code: CodeStorage, Message: "internal error"}

// toPublic классифицирует ошибку сервиса. Всё неизвестное становится STORAGE_ERROR.
func toPublic(err error) *Error {
	for _, pe := range publicErrors {
		if errors.Is(err, pe.target) {
			return &Error{Code: pe.public.Code, Message: pe.public.Message}
		}
	}
	return &Error{Code: internalError.Code, Message: internalError.Message}
}
