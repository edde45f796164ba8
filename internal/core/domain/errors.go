package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidFile        = errors.New("invalid file format")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrAlreadyReviewed    = errors.New("lot already reviewed by this user")
	ErrLotNotFound        = errors.New("lot not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrObjectExists       = errors.New("object already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found in one input.
// errors.Is(err, ErrInvalidInput) reports true for it.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Upstream operations reported to clients with a generic message.
const (
	OpUploadImage   = "upload_image"
	OpCreateLot     = "create_lot"
	OpCreateReview  = "create_review"
	OpUpdateReview  = "update_review"
	OpUpdateProfile = "update_profile"
	OpReadCatalog   = "read_catalog"
)

// UpstreamError wraps a storage or network failure. Err is for logs only.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream is shorthand for &UpstreamError{Op: op, Err: err}.
func Upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
