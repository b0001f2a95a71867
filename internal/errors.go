package internal

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeInvalidAmount   ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDates    ErrorCode = "INVALID_DATES"
	ErrCodeInvalidAttendee ErrorCode = "INVALID_ATTENDEES"

	ErrCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrCodeClientNotFound   ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeContractNotFound ErrorCode = "CONTRACT_NOT_FOUND"
	ErrCodeEventNotFound    ErrorCode = "EVENT_NOT_FOUND"

	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeOwnershipDenied  ErrorCode = "OWNERSHIP_DENIED"
	ErrCodeCannotAssign     ErrorCode = "CANNOT_ASSIGN"

	ErrCodeEmailTaken        ErrorCode = "EMAIL_TAKEN"
	ErrCodeInvalidRole       ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidFilter     ErrorCode = "INVALID_FILTER"
	ErrCodeNoClientAvailable ErrorCode = "NO_CLIENT_AVAILABLE"
	ErrCodeNoSignedContract  ErrorCode = "NO_SIGNED_CONTRACT"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

// AppError is the single error currency of the application. Expected
// denials (permission, not-found, conflict) travel as sentinel values
// declared below; invariant violations are built by the entity validators
// with ErrorTypeValidation and must never be swallowed before reaching
// the CLI boundary.
type AppError struct {
	Type    ErrorType
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match two AppErrors by type and code, so wrapped
// copies still compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Type == appErr.Type && e.Code == appErr.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: code, Message: message}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Code: code, Message: message}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Code: code, Message: message}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeForbidden, Code: code, Message: message}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{Type: ErrorTypeConflict, Code: code, Message: message}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Code: "INTERNAL_ERROR", Message: message, Cause: cause}
}

var (
	ErrUserNotFound     = NewNotFoundError("utilisateur introuvable", ErrCodeUserNotFound)
	ErrClientNotFound   = NewNotFoundError("client inexistant", ErrCodeClientNotFound)
	ErrContractNotFound = NewNotFoundError("contrat inexistant", ErrCodeContractNotFound)
	ErrEventNotFound    = NewNotFoundError("événement inexistant", ErrCodeEventNotFound)

	ErrPermissionDenied = NewForbiddenError("permission refusée", ErrCodePermissionDenied)
	ErrOwnershipDenied  = NewForbiddenError("le client n'appartient pas à ce commercial", ErrCodeOwnershipDenied)
	ErrCannotAssign     = NewForbiddenError("impossible d'assigner un client à cet utilisateur", ErrCodeCannotAssign)

	ErrEmailTaken        = NewConflictError("email déjà utilisé", ErrCodeEmailTaken)
	ErrInvalidRole       = NewConflictError("rôle invalide", ErrCodeInvalidRole)
	ErrInvalidFilter     = NewConflictError("option de filtre invalide", ErrCodeInvalidFilter)
	ErrNoClientAvailable = NewConflictError("aucun client disponible", ErrCodeNoClientAvailable)
	ErrNoSignedContract  = NewConflictError("aucun contrat signé disponible", ErrCodeNoSignedContract)

	ErrInvalidCredentials = NewUnauthorizedError("identifiants invalides", ErrCodeInvalidCredentials)
	ErrNotAuthenticated   = NewUnauthorizedError("aucune session active", ErrCodeNotAuthenticated)
	ErrInvalidToken       = NewUnauthorizedError("token invalide", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token expiré", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsInvariantViolation reports whether err comes from an entity validator.
// Those errors abort the triggering write and must reach the CLI boundary
// unchanged; services never translate them into a neutral result.
func IsInvariantViolation(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == ErrorTypeValidation
}
