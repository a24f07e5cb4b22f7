package categories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/media"
	"github.com/joefazee/neo-admin/internal/sanitizer"
	"github.com/joefazee/neo-admin/internal/validator"
	"github.com/joefazee/neo-admin/models"
)

const (
	maxNameLength    = 100
	maxDetailsLength = 1000

	successTitle         = "Success!"
	createdMessage       = "Category created successfully"
	updatedMessage       = "Category updated successfully"
	createFailedMessage  = "Failed to create category"
	updateFailedMessage  = "Failed to update category"
	invalidFieldsMessage = "Please fix the errors above"
)

// SaveWorkflow creates and edits categories: sanitize, validate, upload media,
// send, then refresh.
type SaveWorkflow struct {
	mu   sync.Mutex
	busy bool

	gateway   Gateway
	resolver  MediaResolver
	notifier  Notifier
	refresher Refresher
	sanitizer sanitizer.HTMLStripperer
	logger    logger.Logger
}

func NewSaveWorkflow(gateway Gateway, resolver MediaResolver, notifier Notifier, refresher Refresher,
	stripper sanitizer.HTMLStripperer, log logger.Logger) *SaveWorkflow {
	if log == nil {
		log = logger.NewNullLogger()
	}
	if stripper == nil {
		stripper = sanitizer.NewHTMLStripper()
	}
	if resolver == nil {
		resolver = media.NewResolver(nil, log)
	}
	return &SaveWorkflow{
		gateway:   gateway,
		resolver:  resolver,
		notifier:  notifier,
		refresher: refresher,
		sanitizer: stripper,
		logger:    log,
	}
}

// Busy reports whether a save is in flight.
func (w *SaveWorkflow) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Create adds a category. A name is required.
func (w *SaveWorkflow) Create(ctx context.Context, fields CategoryFields) (*models.Category, error) {
	return w.save(ctx, "", fields)
}

// Edit sends only the supplied fields of category id.
func (w *SaveWorkflow) Edit(ctx context.Context, id string, fields CategoryFields) (*models.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrInvalidCategoryID
	}
	return w.save(ctx, id, fields)
}

func (w *SaveWorkflow) save(ctx context.Context, id string, fields CategoryFields) (*models.Category, error) {
	if !w.start() {
		return nil, ErrBusy
	}
	defer w.finish()

	creating := id == ""
	failed := updateFailedMessage
	if creating {
		failed = createFailedMessage
	}

	payload := w.sanitize(fields)
	if v := validateFields(&payload, creating); !v.Valid() {
		w.notifier.Error(errorTitle, invalidFieldsMessage)
		return nil, v
	}

	if err := w.resolver.Resolve(ctx, payload.media()...); err != nil {
		w.logger.Error(err, logger.Fields{"op": "upload category media"})
		w.notifier.Error(errorTitle, failed)
		return nil, fmt.Errorf("resolve media: %w", err)
	}

	var (
		category *models.Category
		err      error
	)
	if creating {
		category, err = w.gateway.CreateCategory(ctx, payload)
	} else {
		category, err = w.gateway.EditCategory(ctx, id, payload)
	}
	if err != nil {
		w.logger.Error(err, logger.Fields{"op": "save category", "id": id})
		w.notifier.Error(errorTitle, models.UserMessage(err, failed))
		return nil, err
	}

	if creating {
		w.notifier.Success(successTitle, createdMessage)
	} else {
		w.notifier.Success(successTitle, updatedMessage)
	}
	if w.refresher != nil {
		if err := w.refresher.Refresh(ctx); err != nil {
			w.logger.Warn("refresh after save failed", logger.Fields{"error": err.Error()})
		}
	}
	return category, nil
}

func (w *SaveWorkflow) start() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return false
	}
	w.busy = true
	return true
}

func (w *SaveWorkflow) finish() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

func (w *SaveWorkflow) sanitize(fields CategoryFields) CategoryFields {
	out := fields.clone()
	for _, s := range []*string{out.Name, out.Slug, out.Details} {
		if s != nil {
			*s = w.sanitizer.StripHTML(*s)
		}
	}
	return out
}

func validateFields(f *CategoryFields, creating bool) *validator.Validator {
	v := validator.New()

	if creating {
		v.Check(f.Name != nil && validator.NotBlank(*f.Name), "name", "Name is required")
	} else {
		v.Check(!f.Empty(), "category", "No changes to save")
		if f.Name != nil {
			v.Check(validator.NotBlank(*f.Name), "name", "Name must not be blank")
		}
	}
	if f.Name != nil {
		v.Check(validator.MaxRunes(*f.Name, maxNameLength), "name",
			fmt.Sprintf("Name must not exceed %d characters", maxNameLength))
	}
	if f.Details != nil {
		v.Check(validator.MaxRunes(*f.Details, maxDetailsLength), "details",
			fmt.Sprintf("Details must not exceed %d characters", maxDetailsLength))
	}
	for _, m := range []struct {
		key, label string
		media      *models.Media
	}{
		{"icon", "Icon", f.Icon},
		{"image", "Image", f.Image},
		{"bannerImg", "Banner", f.BannerImg},
	} {
		if m.media != nil && m.media.Kind == models.MediaRemote {
			v.Check(validator.IsURL(m.media.URL), m.key, m.label+" must be a valid URL")
		}
	}
	return v
}
