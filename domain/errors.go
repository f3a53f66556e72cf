package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSnapshotUninitialized  = errors.New("no snapshot has been fetched yet")
	ErrPortOutOfRange         = errors.New("port must be between 1 and 65535")
	ErrInvalidContainerAction = errors.New("invalid container action")
)

// BackendError is the structured fault returned by the remote enumeration
// service. A fetch that fails with a BackendError is transient: the existing
// snapshot stays readable and polling continues.
type BackendError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *BackendError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidatePort rejects port lookups before any remote call is attempted.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: got %d", ErrPortOutOfRange, port)
	}
	return nil
}
