package deps

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joefazee/neo-admin/app"
	"github.com/joefazee/neo-admin/app/account"
	"github.com/joefazee/neo-admin/app/api"
	"github.com/joefazee/neo-admin/app/categories"
	"github.com/joefazee/neo-admin/internal/cache"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/media"
	"github.com/joefazee/neo-admin/internal/sanitizer"
	"github.com/joefazee/neo-admin/internal/security"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/joefazee/neo-admin/models"
)

// Container holds all shared dependencies
type Container struct {
	Config    *app.Config
	Logger    logger.Logger
	Sanitizer sanitizer.HTMLStripperer
	Snapshots cache.Cache[[]models.Category]
	Client    *api.Client
	Session   *security.Session
	Resolver  *media.Resolver
	Terminal  *terminal.Terminal

	closers []io.Closer
}

// NewContainer wires the client from cfg. Output goes through term.
func NewContainer(ctx context.Context, cfg *app.Config, term *terminal.Terminal, log logger.Logger) (*Container, error) {
	if log == nil {
		log = logger.NewNullLogger()
	}
	c := &Container{
		Config:    cfg,
		Logger:    log,
		Sanitizer: sanitizer.NewHTMLStripper(),
		Terminal:  term,
	}

	snapshots, err := cache.NewCache[[]models.Category](cfg.Cache.Backend, cfg.Cache.RedisOptions())
	if err != nil {
		return nil, fmt.Errorf("snapshot cache: %w", err)
	}
	if closer, ok := snapshots.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	c.Snapshots = snapshots

	if err := c.connect(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) connect(ctx context.Context) error {
	cfg, log := c.Config, c.Logger

	var err error
	c.Client, err = api.NewClient(api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.Auth.Token,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	inspector, err := security.NewTokenInspector(cfg.Auth.SymmetricKey)
	if err != nil {
		return fmt.Errorf("token inspector: %w", err)
	}
	c.Session = security.NewSession(cfg.Auth.Token, cfg.Auth.UserID, inspector)

	var uploader media.Uploader
	if cfg.Media.Enabled() {
		minio, err := media.NewMinioUploader(cfg.Media.Minio())
		if err != nil {
			return err
		}
		if err := minio.EnsureBucket(ctx); err != nil {
			log.Warn("media bucket unavailable", logger.Fields{"error": err.Error()})
		}
		uploader = minio
	}
	c.Resolver = media.NewResolver(uploader, log)
	return nil
}

// Categories wires the category management page.
func (c *Container) Categories(opts ...categories.DeleteOption) *categories.Module {
	return categories.Init(categories.Dependencies{
		Client:      c.Client,
		Snapshots:   c.Snapshots,
		SnapshotTTL: c.Config.Cache.TTL,
		PageSize:    c.Config.UI.PageSize,
		Resolver:    c.Resolver,
		Sanitizer:   c.Sanitizer,
		Notifier:    c.Terminal,
		Confirmer:   confirmer{c.Terminal},
		Logger:      c.Logger,
	}, opts...)
}

// PasswordForm wires the change password form.
func (c *Container) PasswordForm() *account.PasswordForm {
	gw := account.NewGateway(c.Client, c.Config.API.ResetPasswordPath)
	return account.NewPasswordForm(gw, c.Session, c.Terminal, c.Logger.With(logger.Fields{"module": "account"}))
}

// Close releases the cache connection.
func (c *Container) Close() error {
	var errs []error
	for _, closer := range c.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

type confirmer struct {
	term *terminal.Terminal
}

func (c confirmer) Confirm(ctx context.Context, p categories.Prompt) (bool, error) {
	body := p.Body
	if p.ConfirmLabel != "" {
		body += fmt.Sprintf(" (y: %s, N: %s)", p.ConfirmLabel, p.CancelLabel)
	}
	return c.term.Confirm(ctx, p.Title, body)
}
