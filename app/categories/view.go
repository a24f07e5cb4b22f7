package categories

import (
	"context"
	"errors"
	"sync"

	"github.com/joefazee/neo-admin/internal/logger"
)

// ErrViewClosed is returned for work that finishes after the view was closed.
var ErrViewClosed = errors.New("categories: view closed")

// View binds the store to a listing for as long as the category page is open.
// Closing it abandons in-flight refreshes.
type View struct {
	mu      sync.Mutex
	gateway Gateway
	store   *Store
	listing *Listing
	logger  logger.Logger

	lifetime context.Context
	cancel   context.CancelFunc
}

func NewView(gateway Gateway, store *Store, pageSize int, log logger.Logger) *View {
	if log == nil {
		log = logger.NewNullLogger()
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &View{
		gateway:  gateway,
		store:    store,
		listing:  NewListing(pageSize),
		logger:   log,
		lifetime: lifetime,
		cancel:   cancel,
	}
}

// Mount performs the initial load and returns the first page. On failure the
// page reflects whatever the store already held.
func (v *View) Mount(ctx context.Context) (Page, error) {
	err := v.Refresh(ctx)
	return v.Current(), err
}

// Refresh reloads the list from the backend. A response that arrives after a
// newer refresh was applied is dropped; one that arrives after Close is
// dropped with ErrViewClosed.
func (v *View) Refresh(ctx context.Context) error {
	if v.Closed() {
		return ErrViewClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(v.lifetime, cancel)
	defer stop()

	ticket := v.store.Begin()
	items, err := v.gateway.ListCategories(ctx)
	if v.Closed() {
		return ErrViewClosed
	}
	if err != nil {
		v.logger.Error(err, logger.Fields{"op": "list categories"})
		return err
	}

	applied, err := v.store.Apply(ctx, ticket, items)
	if err != nil {
		v.logger.Warn("category snapshot not saved", logger.Fields{"error": err.Error()})
	}
	if applied {
		v.logger.Debug("categories loaded", logger.Fields{"count": len(items)})
	}
	return nil
}

// Current derives the page for the current store contents.
func (v *View) Current() Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listing.Derive(v.store.Read())
}

// Search sets the query and returns the first matching page.
func (v *View) Search(query string) Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listing.SetQuery(query)
	return v.listing.Derive(v.store.Read())
}

// Next advances one page if possible.
func (v *View) Next() (Page, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := v.store.Read()
	moved := v.listing.Next(items)
	return v.listing.Derive(items), moved
}

// Prev goes back one page if possible.
func (v *View) Prev() (Page, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	moved := v.listing.Prev()
	return v.listing.Derive(v.store.Read()), moved
}

// Goto jumps to a zero based page index, clamped to the available pages.
func (v *View) Goto(index int) Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := v.store.Read()
	v.listing.Goto(items, index)
	return v.listing.Derive(items)
}

// PageSize is the number of categories per page.
func (v *View) PageSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listing.PageSize()
}

// Close ends the view's lifetime.
func (v *View) Close() {
	v.cancel()
}

func (v *View) Closed() bool {
	return v.lifetime.Err() != nil
}
