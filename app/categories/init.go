package categories

import (
	"time"

	"github.com/joefazee/neo-admin/app/api"
	"github.com/joefazee/neo-admin/internal/cache"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/sanitizer"
	"github.com/joefazee/neo-admin/models"
)

// Dependencies represent the dependencies needed for the categories module
type Dependencies struct {
	Client    *api.Client
	Snapshots cache.Cache[[]models.Category]
	// SnapshotTTL of zero keeps snapshots until overwritten.
	SnapshotTTL time.Duration
	PageSize    int
	Resolver    MediaResolver
	Sanitizer   sanitizer.HTMLStripperer
	Notifier    Notifier
	Confirmer   Confirmer
	Logger      logger.Logger
}

// Module is the wired category management page.
type Module struct {
	Gateway Gateway
	Store   *Store
	View    *View
	Deleter *DeleteWorkflow
	Saver   *SaveWorkflow
}

// Init initializes the categories module. Mutations refresh through the view.
func Init(deps Dependencies, opts ...DeleteOption) *Module {
	log := deps.Logger
	if log == nil {
		log = logger.NewNullLogger()
	}
	log = log.With(logger.Fields{"module": "categories"})

	// Initialize gateway
	gw := NewGateway(deps.Client)

	// Initialize store and view
	store := NewStore(deps.Snapshots, deps.SnapshotTTL, log)
	view := NewView(gw, store, deps.PageSize, log)

	return &Module{
		Gateway: gw,
		Store:   store,
		View:    view,
		Deleter: NewDeleteWorkflow(gw, deps.Confirmer, deps.Notifier, view, log, opts...),
		Saver:   NewSaveWorkflow(gw, deps.Resolver, deps.Notifier, view, deps.Sanitizer, log),
	}
}
