package categories

import (
	"context"

	"github.com/joefazee/neo-admin/models"
)

// Gateway defines the remote operations on categories. Calls are single-shot
// and fail with a *models.RemoteError.
type Gateway interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, fields CategoryFields) (*models.Category, error)
	EditCategory(ctx context.Context, id string, fields CategoryFields) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (*DeleteResult, error)
}

// Notifier shows transient success and failure messages.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

// Confirmer asks the user to accept or decline a prompt.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// Refresher reloads the category list after a mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// MediaResolver uploads pending media and rewrites it as remote references.
type MediaResolver interface {
	Resolve(ctx context.Context, targets ...*models.Media) error
}
