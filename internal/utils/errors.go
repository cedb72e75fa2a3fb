package utils

import "errors"

// Common application errors used across services.
var (
	ErrValidation           = errors.New("VALIDATION_ERROR")
	ErrInvalidCursor        = errors.New("INVALID_CURSOR")
	ErrUnsupportedOperation = errors.New("UNSUPPORTED_OPERATION")
	ErrProductNotFound      = errors.New("PRODUCT_NOT_FOUND")
	ErrURLNotFound          = errors.New("URL_NOT_FOUND")
	ErrDraftNotFound        = errors.New("DRAFT_NOT_FOUND")
	ErrProductLimitReached  = errors.New("PRODUCT_LIMIT_REACHED")
	ErrURLLimitReached      = errors.New("URL_LIMIT_REACHED")
	ErrConflict             = errors.New("CONFLICT")
	ErrUploadFailed         = errors.New("UPLOAD_FAILED")
	ErrInvalidToken         = errors.New("INVALID_TOKEN")
)
