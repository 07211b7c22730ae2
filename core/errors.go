package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorCodeValidation          = "JOBDECK_VALIDATION"
	ErrorCodeNotFound            = "JOBDECK_NOT_FOUND"
	ErrorCodeConstraintViolation = "JOBDECK_CONSTRAINT_VIOLATION"
	ErrorCodeProviderFailure     = "JOBDECK_PROVIDER_FAILURE"
	ErrorCodeConfiguration       = "JOBDECK_CONFIGURATION"
	ErrorCodeInternal            = "JOBDECK_INTERNAL"
)

// NewValidationError flags malformed input caught before any I/O.
func NewValidationError(field, message string) error {
	return goerrors.NewValidation("core: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorCodeValidation).
		WithSeverity(goerrors.SeverityError)
}

// NewNotFoundError marks a mutation that targeted a row the owner does not
// have. Reads report absence through their boolean instead.
func NewNotFoundError(resource string, id int64) error {
	return goerrors.New(
		fmt.Sprintf("core: %s %d not found", resource, id),
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorCodeNotFound)
}

// NewConstraintViolation wraps a store rejection (foreign key, uniqueness,
// required column) without reinterpreting it.
func NewConstraintViolation(err error, message string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryConflict, message).
		WithCode(http.StatusConflict).
		WithTextCode(ErrorCodeConstraintViolation)
}

// NewProviderError carries the identity provider's raw diagnostic detail.
func NewProviderError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorCodeProviderFailure)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// WrapProviderError wraps a transport-level failure reaching the provider.
func WrapProviderError(source error, message string, metadata map[string]any) error {
	if source == nil {
		return NewProviderError(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorCodeProviderFailure)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// NewConfigurationError marks a fatal startup misconfiguration.
func NewConfigurationError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorCodeConfiguration)
}

func IsValidationError(err error) bool {
	return hasTextCode(err, ErrorCodeValidation)
}

func IsNotFoundError(err error) bool {
	return hasTextCode(err, ErrorCodeNotFound)
}

func IsConstraintViolation(err error) bool {
	return hasTextCode(err, ErrorCodeConstraintViolation)
}

func IsProviderError(err error) bool {
	return hasTextCode(err, ErrorCodeProviderFailure)
}

func IsConfigurationError(err error) bool {
	return hasTextCode(err, ErrorCodeConfiguration)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "constraint"), strings.Contains(msg, "unique"),
		strings.Contains(msg, "foreign key"):
		return newCoreError(err.Error(), goerrors.CategoryConflict, ErrorCodeConstraintViolation)
	case strings.Contains(msg, "provider"):
		return newCoreError(err.Error(), goerrors.CategoryExternal, ErrorCodeProviderFailure)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"),
		strings.Contains(msg, "exceeds"):
		return newCoreError(err.Error(), goerrors.CategoryBadInput, ErrorCodeValidation)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func newCoreError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusFor(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorCodeValidation
	case goerrors.CategoryNotFound:
		return ErrorCodeNotFound
	case goerrors.CategoryConflict:
		return ErrorCodeConstraintViolation
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return ErrorCodeProviderFailure
	default:
		return ErrorCodeInternal
	}
}

func httpStatusFor(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal, goerrors.CategoryOperation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
