package account

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/validator"
	"github.com/joefazee/neo-admin/models"
)

// Field names a password form input.
type Field string

const (
	FieldCurrent Field = "current"
	FieldNew     Field = "new"
	FieldReenter Field = "reenter"
)

const minPasswordLength = 8

const (
	successTitle   = "Success!"
	errorTitle     = "Error!"
	changedMessage = "Password changed successfully"
	failedMessage  = "Failed to change password"
	invalidMessage = "Please fix the errors above"
)

var (
	// ErrBusy is returned when a submit starts while another is in flight.
	ErrBusy = errors.New("account: password change already in progress")
	// ErrUnknownField is returned by Set for a name that is not a form field.
	ErrUnknownField = errors.New("account: unknown field")
)

// PasswordForm holds the change password inputs and their errors.
type PasswordForm struct {
	mu         sync.Mutex
	values     map[Field]string
	errors     *validator.Validator
	submitting bool

	gateway  Gateway
	identity IdentityProvider
	notifier Notifier
	logger   logger.Logger
}

func NewPasswordForm(gateway Gateway, identity IdentityProvider, notifier Notifier, log logger.Logger) *PasswordForm {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &PasswordForm{
		values:   emptyValues(),
		errors:   validator.New(),
		gateway:  gateway,
		identity: identity,
		notifier: notifier,
		logger:   log,
	}
}

func emptyValues() map[Field]string {
	return map[Field]string{FieldCurrent: "", FieldNew: "", FieldReenter: ""}
}

// Set updates a field and clears its error.
func (f *PasswordForm) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.values[field] = value
	f.errors.Clear(string(field))
	return nil
}

func (f *PasswordForm) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Errors returns the current field errors.
func (f *PasswordForm) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[Field]string, len(f.errors.Errors))
	for k, msg := range f.errors.Errors {
		out[Field(k)] = msg
	}
	return out
}

// Submitting reports whether a reset call is in flight.
func (f *PasswordForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Validate runs every rule and records all errors.
func (f *PasswordForm) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = validatePassword(f.values)
	return f.errors.Valid()
}

// Submit validates the form and, when valid, sends exactly one reset call
// for the signed-in admin. The fields are cleared on success.
func (f *PasswordForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.errors = validatePassword(f.values)
	if !f.errors.Valid() {
		failed := &validator.Validator{Errors: maps.Clone(f.errors.Errors)}
		f.mu.Unlock()
		f.notifier.Error(errorTitle, invalidMessage)
		return failed
	}
	req := ResetPasswordRequest{
		OldPassword: f.values[FieldCurrent],
		NewPassword: f.values[FieldNew],
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if user, err := f.identity.CurrentUser(ctx); err != nil {
		f.logger.Warn("current user unknown, sending empty user id", logger.Fields{"error": err.Error()})
	} else {
		req.UserID = user.UserID
	}

	if _, err := f.gateway.ResetPassword(ctx, req); err != nil {
		f.logger.Error(err, logger.Fields{"op": "reset password", "user_id": req.UserID})
		msg := failedMessage
		if reason := models.UserMessage(err, ""); reason != "" {
			msg += ": " + reason
		}
		f.notifier.Error(errorTitle, msg)
		return err
	}

	f.mu.Lock()
	f.values = emptyValues()
	f.errors = validator.New()
	f.mu.Unlock()

	f.notifier.Success(successTitle, changedMessage)
	return nil
}

func validatePassword(values map[Field]string) *validator.Validator {
	v := validator.New()
	current, next, reenter := values[FieldCurrent], values[FieldNew], values[FieldReenter]

	v.Check(validator.NotBlank(current), string(FieldCurrent), "Current password is required")

	v.Check(validator.NotBlank(next), string(FieldNew), "New password is required")
	v.Check(validator.MinRunes(next, minPasswordLength), string(FieldNew), "Password must be at least 8 characters")

	v.Check(validator.NotBlank(reenter), string(FieldReenter), "Please re-enter your password")
	v.Check(validator.Equal(next, reenter), string(FieldReenter), "Passwords do not match")

	return v
}
