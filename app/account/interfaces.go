package account

import (
	"context"

	"github.com/joefazee/neo-admin/internal/security"
)

// Gateway defines the remote account operations.
type Gateway interface {
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error)
}

// IdentityProvider resolves the signed-in admin.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*security.Identity, error)
}

// Notifier shows transient success and failure messages.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}
