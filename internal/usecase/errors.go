package usecase

import (
	"errors"
	"fmt"
)

// Códigos de erro. Só a mensagem chega ao cliente; o código decide o status HTTP.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeMissingField         = "MISSING_REQUIRED_FIELD"
	CodeInvalidVideoURL      = "INVALID_VIDEO_URL"
	CodeNotFound             = "NOT_FOUND"
	CodeBadRequest           = "BAD_REQUEST"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeAlreadySubscribed    = "ALREADY_SUBSCRIBED"
	CodeUnauthorized         = "UNAUTHORIZED"

	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeStorageWriteFailed = "STORAGE_WRITE_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// DomainError é falha de entrada ou de regra; detectada antes de qualquer escrita.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha do gateway (banco, storage).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o código de um DomainError ou TechnicalError, ou "".
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func domainErr(code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func storageErr(op string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStorageUnavailable, Message: op, Err: err}
}
