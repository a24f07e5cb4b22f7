package categories

import (
	"context"
	"errors"
	"sync"

	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/models"
)

// ErrBusy is returned when a workflow is asked to start while it is running.
var ErrBusy = errors.New("categories: operation already in progress")

const (
	deleteBody          = "This action cannot be undone!"
	deleteConfirmLabel  = "Yes, delete it!"
	deleteCancelLabel   = "Cancel"
	deletedTitle        = "Deleted!"
	errorTitle          = "Error!"
	deleteFailedMessage = "Failed to delete category"
)

// Prompt is a confirmation question with its two answers.
type Prompt struct {
	Title        string
	Body         string
	ConfirmLabel string
	CancelLabel  string
}

// DeleteState is a step of the delete workflow.
type DeleteState int

const (
	StateIdle DeleteState = iota
	StateConfirming
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s DeleteState) String() string {
	switch s {
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome is how a delete request ended.
type Outcome int

const (
	OutcomeDeclined Outcome = iota
	OutcomeDeleted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	default:
		return "declined"
	}
}

// DeleteOption configures a DeleteWorkflow.
type DeleteOption func(*DeleteWorkflow)

// WithTransitionObserver registers fn to be called on every state change.
func WithTransitionObserver(fn func(from, to DeleteState)) DeleteOption {
	return func(w *DeleteWorkflow) { w.observer = fn }
}

// DeleteWorkflow confirms, deletes and then refreshes, one category at a time.
type DeleteWorkflow struct {
	mu    sync.Mutex
	state DeleteState

	gateway   Gateway
	confirmer Confirmer
	notifier  Notifier
	refresher Refresher
	logger    logger.Logger
	observer  func(from, to DeleteState)
}

func NewDeleteWorkflow(gateway Gateway, confirmer Confirmer, notifier Notifier, refresher Refresher,
	log logger.Logger, opts ...DeleteOption) *DeleteWorkflow {
	if log == nil {
		log = logger.NewNullLogger()
	}
	w := &DeleteWorkflow{
		gateway:   gateway,
		confirmer: confirmer,
		notifier:  notifier,
		refresher: refresher,
		logger:    log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *DeleteWorkflow) State() DeleteState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Busy reports whether a delete call is in flight.
func (w *DeleteWorkflow) Busy() bool {
	return w.State() == StateSubmitting
}

// Delete asks for confirmation and deletes category. Declining makes no call.
// A failed call leaves the list untouched and is reported through the
// notifier as well as returned.
func (w *DeleteWorkflow) Delete(ctx context.Context, category models.Category) (Outcome, error) {
	w.mu.Lock()
	if w.state != StateIdle {
		w.mu.Unlock()
		return OutcomeDeclined, ErrBusy
	}
	w.state = StateConfirming
	w.mu.Unlock()
	w.notify(StateIdle, StateConfirming)

	ok, err := w.confirmer.Confirm(ctx, Prompt{
		Title:        "Delete " + category.Name + "?",
		Body:         deleteBody,
		ConfirmLabel: deleteConfirmLabel,
		CancelLabel:  deleteCancelLabel,
	})
	if err != nil || !ok {
		w.transition(StateIdle)
		return OutcomeDeclined, err
	}

	w.transition(StateSubmitting)
	_, err = w.gateway.DeleteCategory(ctx, category.ID)
	if err != nil {
		w.transition(StateFailed)
		w.logger.Error(err, logger.Fields{"op": "delete category", "id": category.ID})
		w.notifier.Error(errorTitle, models.UserMessage(err, deleteFailedMessage))
		w.transition(StateIdle)
		return OutcomeFailed, err
	}

	w.transition(StateSucceeded)
	w.notifier.Success(deletedTitle, category.Name+" has been deleted.")
	if err := w.refresher.Refresh(ctx); err != nil {
		w.logger.Warn("refresh after delete failed", logger.Fields{"error": err.Error()})
	}
	w.transition(StateIdle)
	return OutcomeDeleted, nil
}

func (w *DeleteWorkflow) transition(to DeleteState) {
	w.mu.Lock()
	from := w.state
	w.state = to
	w.mu.Unlock()
	w.notify(from, to)
}

func (w *DeleteWorkflow) notify(from, to DeleteState) {
	if w.observer != nil {
		w.observer(from, to)
	}
}
