package state

import (
	"context"
	"sync"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

const detailFallback = "Failed to fetch expense"

// DetailViewer fetches a single expense on demand for the read-only detail
// panel. The panel holds an independent copy: it is not refreshed when the
// list refetches.
type DetailViewer struct {
	session Session
	reader  gateway.ExpenseReader
	logger  *log.Logger

	mu      sync.Mutex
	current *core.Expense
	errText string
}

// NewDetailViewer returns a viewer with no selection.
func NewDetailViewer(session Session, reader gateway.ExpenseReader, logger *log.Logger) *DetailViewer {
	return &DetailViewer{
		session: session,
		reader:  reader,
		logger:  logger.WithComponent(log.ComponentDetail),
	}
}

// View fetches the expense and replaces the panel content on success. On
// failure the previous content stays and the error slot is set.
func (v *DetailViewer) View(ctx context.Context, id core.ID) error {
	e, err := v.reader.GetExpense(ctx, v.session.Token, id)
	if err != nil {
		v.mu.Lock()
		v.errText = gateway.ErrorMessage(err, detailFallback)
		v.mu.Unlock()
		v.logger.ErrorContext(ctx, "detail fetch failed",
			log.FieldOperation, log.OpGet,
			log.FieldExpenseID, string(id),
			log.FieldError, err)
		return err
	}

	v.mu.Lock()
	v.current = &e
	v.errText = ""
	v.mu.Unlock()
	return nil
}

// Detail returns the currently shown expense, or false if the panel is
// closed.
func (v *DetailViewer) Detail() (core.Expense, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return core.Expense{}, false
	}
	return *v.current, true
}

// Err returns the message from the last failed fetch, or "".
func (v *DetailViewer) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errText
}

// Close dismisses the panel. The error slot is left alone; only the next
// fetch outcome changes it.
func (v *DetailViewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = nil
}
