package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced to clients and used for metrics labels.
const (
	CodeInvalidPayload     = "INVALID_PAYLOAD"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeInvalidField       = "INVALID_FIELD"
	CodeNoChanges          = "NO_CHANGES"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeNotificationFailed = "NOTIFICATION_FAILED"
	CodeStorageError       = "STORAGE_ERROR"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Kind groups codes into the abstract failure classes callers reason about.
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindAuthentication Kind = "AuthenticationError"
	KindAuthorization  Kind = "AuthorizationError"
	KindNotFound       Kind = "NotFoundError"
	KindDependency     Kind = "DependencyError"
	KindRateLimit      Kind = "RateLimitError"
	KindUnexpected     Kind = "UnexpectedError"
)

var codeKinds = map[string]Kind{
	CodeInvalidPayload:     KindValidation,
	CodeInvalidStatus:      KindValidation,
	CodeInvalidAmount:      KindValidation,
	CodeInvalidField:       KindValidation,
	CodeNoChanges:          KindValidation,
	CodeUnauthorized:       KindAuthentication,
	CodeForbidden:          KindAuthorization,
	CodeNotFound:           KindNotFound,
	CodeNotificationFailed: KindDependency,
	CodeStorageError:       KindDependency,
	CodeProviderError:      KindDependency,
	CodeRateLimited:        KindRateLimit,
	CodeInternal:           KindUnexpected,
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Kind reports the failure class of the error code.
func (e *DomainError) Kind() Kind {
	if kind, ok := codeKinds[e.Code]; ok {
		return kind
	}
	return KindUnexpected
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidPayload(message string) error {
	return NewDomainError(CodeInvalidPayload, message, http.StatusBadRequest, nil)
}

func NewInvalidStatus() error {
	return NewDomainError(CodeInvalidStatus, "Invalid status", http.StatusBadRequest, nil)
}

func NewInvalidAmount(message string) error {
	return NewDomainError(CodeInvalidAmount, message, http.StatusBadRequest, nil)
}

func NewInvalidField(field, message string) error {
	return NewDomainError(CodeInvalidField, message, http.StatusBadRequest, map[string]any{"field": field})
}

func NewNoChanges() error {
	return NewDomainError(CodeNoChanges, "No changes provided", http.StatusBadRequest, nil)
}

func NewNotFound(message string) error {
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "Too many requests", http.StatusTooManyRequests, nil)
}

// NewProviderError reports an identity provider rejection with its message intact.
func NewProviderError(err error) error {
	return &DomainError{
		Code:       CodeProviderError,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewStorageError wraps a data store failure. The store message is passed through.
func NewStorageError(err error) error {
	return &DomainError{
		Code:       CodeStorageError,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewNotificationFailed(err error) error {
	return &DomainError{
		Code:       CodeNotificationFailed,
		Message:    "failed to send quote email",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	code := CodeInternal
	switch {
	case err.Code == http.StatusNotFound:
		code = CodeNotFound
	case err.Code == http.StatusUnauthorized:
		code = CodeUnauthorized
	case err.Code == http.StatusForbidden:
		code = CodeForbidden
	case err.Code == http.StatusTooManyRequests:
		code = CodeRateLimited
	case err.Code >= 400 && err.Code < 500:
		code = CodeInvalidPayload
	}
	return &DomainError{Code: code, Message: err.Message, HTTPStatus: err.Code}
}

// CodeOf returns the error code carried by err, or "" when err is nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}

// KindOf returns the failure class of err, or "" when err is nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Kind()
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
