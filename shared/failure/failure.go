package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure beyond its HTTP response code.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindPrecondition      Kind = "precondition"
	KindAvailabilityFetch Kind = "availability_fetch"
	KindSubmission        Kind = "submission"
	KindNetwork           Kind = "network"
	KindUpstream          Kind = "upstream"
	KindNotFound          Kind = "not_found"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Validation returns a failure for a caller-side precondition violation.
// It never reflects a network round trip.
func Validation(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Precondition returns a failure for an operation attempted on a draft that
// is not in a submittable state.
func Precondition(msg string) error {
	return &Failure{
		Code:    http.StatusPreconditionFailed,
		Kind:    KindPrecondition,
		Message: msg,
	}
}

// AvailabilityFetch returns a failure for an availability query that could
// not be completed against the backend.
func AvailabilityFetch(err error) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Kind:    KindAvailabilityFetch,
		Message: fmt.Sprintf("failed to fetch available rooms: %v", err),
	}
}

// Submission returns a failure for a booking submission the backend rejected
// or that never reached it.
func Submission(err error) error {
	return &Failure{
		Code:    http.StatusBadGateway,
		Kind:    KindSubmission,
		Message: fmt.Sprintf("failed to submit booking: %v", err),
	}
}

// Network returns a failure for a transport-level error, as opposed to a
// non-2xx response from the backend.
func Network(err error) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindNetwork,
		Message: err.Error(),
	}
}

// Upstream returns a failure carrying a non-2xx backend status and its
// best-effort parsed message.
func Upstream(code int, msg string) error {
	return &Failure{
		Code:    code,
		Kind:    KindUpstream,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface, or the empty Kind
// for errors that are not failures.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether the error is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
