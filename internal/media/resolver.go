package media

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/models"
)

// ErrUploadUnavailable is returned when uploaded media must be resolved but
// no uploader is configured.
var ErrUploadUnavailable = errors.New("media: no uploader configured")

// Uploader stores a file and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Resolver turns Uploaded media into Remote references before a payload is
// sent to the backend.
type Resolver struct {
	uploader Uploader
	logger   logger.Logger
}

// NewResolver creates a resolver. A nil uploader is allowed; resolving
// uploaded media then fails with ErrUploadUnavailable.
func NewResolver(uploader Uploader, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Resolver{uploader: uploader, logger: log}
}

// Resolve uploads every Uploaded target in parallel and rewrites it in place.
// Targets are left untouched when any upload fails.
func (r *Resolver) Resolve(ctx context.Context, targets ...*models.Media) error {
	var pending []*models.Media
	for _, t := range targets {
		if t != nil && t.Kind == models.MediaUploaded {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	if r.uploader == nil {
		return ErrUploadUnavailable
	}

	urls := make([]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range pending {
		g.Go(func() error {
			url, err := r.uploader.Upload(gctx, m.Name, m.ContentType, m.Data)
			if err != nil {
				return fmt.Errorf("upload %s: %w", m.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error(err, logger.Fields{"files": len(pending)})
		return err
	}

	for i, m := range pending {
		r.logger.Debug("media uploaded", logger.Fields{"name": m.Name, "url": urls[i]})
		*m = models.RemoteMedia(urls[i], m.Name)
	}
	return nil
}
