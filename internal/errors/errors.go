package errors

import "fmt"

type ErrorCode int

const (
	ErrorCodeValidation ErrorCode = iota + 1
	ErrorCodeInternal
	ErrorCodeBadRequest
)

// FieldKind names the validation failure for one field of one submission.
type FieldKind string

const (
	InvalidURL         FieldKind = "InvalidUrl"
	InvalidValidity    FieldKind = "InvalidValidity"
	InvalidShortcode   FieldKind = "InvalidShortcode"
	DuplicateShortcode FieldKind = "DuplicateShortcode"
)

type FieldError struct {
	Index   int       `json:"index"`
	Field   string    `json:"field"`
	Kind    FieldKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

type ServiceError struct {
	Op      string
	Code    ErrorCode
	Message string
	Err     error
	Details []FieldError
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%d field errors)", e.Op, e.Message, len(e.Details))
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewBatchValidationError reports every per-submission failure of a batch at once.
func NewBatchValidationError(op string, details []FieldError) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeValidation,
		Message: "batch validation failed",
		Details: details,
	}
}

func NewBadRequestError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(op, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    ErrorCodeInternal,
		Message: message,
		Err:     err,
	}
}
