package models

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("record not found")

	ErrInvalidCategoryID   = errors.New("invalid category ID")
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrUnresolvedMedia     = errors.New("media must be uploaded before it can be sent")
	ErrUnknownUser         = errors.New("no authenticated user")
)

// RemoteError is the failure surfaced by every gateway call. Kind is one of
// ErrNetwork, ErrServer, ErrValidation or ErrNotFound.
type RemoteError struct {
	Kind    error
	Status  int
	Code    string
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.Status)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind sentinel and the transport cause to errors.Is.
func (e *RemoteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewNetworkError wraps a transport failure where no response was received.
func NewNetworkError(cause error) *RemoteError {
	return &RemoteError{Kind: ErrNetwork, Cause: cause}
}

// KindForStatus maps a non-2xx HTTP status onto the error taxonomy.
func KindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrServer
	}
}

// UserMessage returns the server supplied detail carried by err, or fallback
// when there is none.
func UserMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}
