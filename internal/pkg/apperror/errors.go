package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeEmptyResult   ErrorCode = "EMPTY_RESULT"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// Коды правил валидации вложений.
const (
	RuleInvalidExtension = "InvalidExtension"
	RuleImageTooLarge    = "ImageTooLarge"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	// Rule уточняет нарушенное правило для VALIDATION_ERROR.
	Rule string
	// Entity указывает вид отсутствующей сущности для NOT_FOUND.
	Entity string
	Cause  error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// NotFound описывает отсутствие сущности kind с идентификатором id.
func NotFound(kind, message string, id fmt.Stringer) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("%s (ID: %s)", message, id))
	e.Entity = kind
	return e
}

// ValidationFailure описывает нарушение правила проверки вложений.
func ValidationFailure(rule, message string) *AppError {
	e := New(ErrCodeValidation, message)
	e.Rule = rule
	return e
}

// EmptyResult означает, что опорная сущность существует, но связанных записей нет.
func EmptyResult(message string) *AppError {
	return New(ErrCodeEmptyResult, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound, ErrCodeEmptyResult:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func IsEmptyResult(err error) bool {
	return hasCode(err, ErrCodeEmptyResult)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// EntityOf возвращает вид отсутствующей сущности или пустую строку.
func EntityOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Entity
	}
	return ""
}

// RuleOf возвращает код нарушенного правила валидации или пустую строку.
func RuleOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Rule
	}
	return ""
}

var (
	ErrUnauthorized = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden    = New(ErrCodeForbidden, "недостаточно прав")
)
