package application

import (
	"errors"

	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrResetRequestFailed   = errors.New("password reset request failed")
	ErrResetConfirmFailed   = errors.New("password reset confirmation failed")
	ErrProfileLoadFailed    = errors.New("profile load failed")
	ErrProfileUpdateFailed  = errors.New("profile update failed")
	ErrPasswordChangeFailed = errors.New("password change failed")
	ErrNotAuthenticated     = errors.New("not authenticated")
	// ErrInvalidInput signals the form was rejected before anything was sent.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrStorage signals the session could not be written to the device store.
	ErrStorage = errors.New("session storage failed")
)

// Error is a session failure carrying a display message.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Display messages shown when the server supplied none.
const (
	msgInvalidCredentials   = "Invalid credentials"
	msgRegistrationFailed   = "Registration failed"
	msgResetRequestFailed   = "Failed to request reset"
	msgResetConfirmFailed   = "Failed to reset password"
	msgProfileLoadFailed    = "Failed to load profile"
	msgProfileUpdateFailed  = "Failed to update profile"
	msgPasswordChangeFailed = "Failed to change password"
	msgNotAuthenticated     = "Not authenticated"
	msgStorage              = "Failed to save session"
)

func newError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// remoteError maps a gateway failure onto kind, preferring the server's message.
func remoteError(kind error, fallback string, cause error) *Error {
	if msg := sharederrors.ServerMessage(cause); msg != "" {
		return newError(kind, msg, cause)
	}
	return newError(kind, fallback, cause)
}

func invalidInput(cause error) *Error {
	return newError(ErrInvalidInput, cause.Error(), cause)
}

func notAuthenticated() *Error {
	return newError(ErrNotAuthenticated, msgNotAuthenticated, nil)
}
