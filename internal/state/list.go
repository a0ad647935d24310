package state

import (
	"context"
	"errors"
	"sync"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

const (
	listFallback   = "Failed to fetch expenses"
	deleteFallback = "Failed to delete expense"
)

// ErrNoPendingDelete is returned when a delete is confirmed without a
// preceding request. No network call is made in that case.
var ErrNoPendingDelete = errors.New("no delete pending")

// ListSynchronizer keeps a local snapshot of the expense collection in sync
// with the server. The snapshot is only ever replaced wholesale by a
// successful fetch; a failed fetch preserves the previous snapshot and sets
// the error slot.
type ListSynchronizer struct {
	session Session
	lister  gateway.ExpenseLister
	deleter gateway.ExpenseDeleter
	logger  *log.Logger

	mu            sync.Mutex
	expenses      []core.Expense
	filter        core.FilterState
	pendingDelete core.ID
	errText       string
	started       bool
}

// NewListSynchronizer returns a synchronizer with an empty snapshot and the
// given initial filter. No fetch happens until Start or Refetch is called.
func NewListSynchronizer(session Session, lister gateway.ExpenseLister, deleter gateway.ExpenseDeleter, filter core.FilterState, logger *log.Logger) *ListSynchronizer {
	return &ListSynchronizer{
		session: session,
		lister:  lister,
		deleter: deleter,
		filter:  filter,
		logger:  logger.WithComponent(log.ComponentList),
	}
}

// Start performs the initial fetch, exactly once. Calls with an invalid
// session or after the first successful invocation are no-ops.
func (l *ListSynchronizer) Start(ctx context.Context) {
	l.mu.Lock()
	if !l.session.Valid() || l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()
	l.Refetch(ctx)
}

// Expenses returns a copy of the current snapshot.
func (l *ListSynchronizer) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Filter returns the current filter values.
func (l *ListSynchronizer) Filter() core.FilterState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// Err returns the message from the last failed fetch or delete, or "".
func (l *ListSynchronizer) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errText
}

// SetFilter updates a single filter field from raw input. Changing the
// filter does not trigger a fetch; the snapshot keeps showing the previous
// results until Apply is called.
func (l *ListSynchronizer) SetFilter(field, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter.Set(field, value)
}

// Apply validates the filter and refetches with it.
func (l *ListSynchronizer) Apply(ctx context.Context) error {
	l.mu.Lock()
	err := l.filter.Validate()
	l.mu.Unlock()
	if err != nil {
		return err
	}
	return l.Refetch(ctx)
}

// Refetch fetches the collection with the current filter and replaces the
// snapshot on success. On failure the snapshot is untouched.
func (l *ListSynchronizer) Refetch(ctx context.Context) error {
	l.mu.Lock()
	filter := l.filter
	l.mu.Unlock()

	expenses, err := l.lister.ListExpenses(ctx, l.session.Token, filter)
	if err != nil {
		l.mu.Lock()
		l.errText = gateway.ErrorMessage(err, listFallback)
		l.mu.Unlock()
		l.logger.ErrorContext(ctx, "fetch failed",
			log.FieldOperation, log.OpList,
			log.FieldCategory, filter.Category,
			log.FieldError, err)
		return err
	}

	l.mu.Lock()
	l.expenses = expenses
	l.errText = ""
	l.mu.Unlock()
	return nil
}

// RequestDelete marks an expense for deletion. Nothing is sent to the
// server until the request is confirmed.
func (l *ListSynchronizer) RequestDelete(id core.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = id
}

// PendingDelete returns the id awaiting confirmation, or false.
func (l *ListSynchronizer) PendingDelete() (core.ID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingDelete, l.pendingDelete != ""
}

// CancelDelete clears the pending request without touching the server.
func (l *ListSynchronizer) CancelDelete() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingDelete = ""
}

// ConfirmDelete issues the delete for the pending id and refetches on
// success. The pending marker is cleared either way; a failed delete sets
// the error slot and leaves the snapshot as it was.
func (l *ListSynchronizer) ConfirmDelete(ctx context.Context) error {
	l.mu.Lock()
	id := l.pendingDelete
	l.pendingDelete = ""
	l.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	if err := l.deleter.DeleteExpense(ctx, l.session.Token, id); err != nil {
		l.mu.Lock()
		l.errText = gateway.ErrorMessage(err, deleteFallback)
		l.mu.Unlock()
		l.logger.ErrorContext(ctx, "delete failed",
			log.FieldOperation, log.OpDelete,
			log.FieldExpenseID, string(id),
			log.FieldError, err)
		return err
	}
	return l.Refetch(ctx)
}
