package state

import (
	"context"
	"sync"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

const (
	createFallback = "Failed to add expense"
	updateFallback = "Failed to update expense"
)

// FormReconciler owns the single form shared between create and edit mode.
// The mode is derived from the edit target: a nil target means create, a
// non-nil target means edit. Changing the target rebuilds the whole form
// from the target's values; any in-progress user edits are discarded.
type FormReconciler struct {
	session Session
	writer  gateway.ExpenseWriter
	logger  *log.Logger

	// OnSaved fires after every successful submit. OnUpdated fires
	// additionally after a successful update, before OnSaved, so the page
	// can clear the edit target. Both must be set before the reconciler is
	// shared across goroutines.
	OnSaved   func()
	OnUpdated func()

	mu      sync.Mutex
	form    core.FormState
	editing *core.Expense
	errText string
}

// NewFormReconciler returns a reconciler in create mode with an empty form.
func NewFormReconciler(session Session, writer gateway.ExpenseWriter, logger *log.Logger) *FormReconciler {
	return &FormReconciler{
		session: session,
		writer:  writer,
		logger:  logger.WithComponent(log.ComponentForm),
	}
}

// Form returns a copy of the current field values.
func (r *FormReconciler) Form() core.FormState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

// Editing returns the current edit target, or false in create mode.
func (r *FormReconciler) Editing() (core.Expense, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.editing == nil {
		return core.Expense{}, false
	}
	return *r.editing, true
}

// Err returns the message from the last failed submit, or "".
func (r *FormReconciler) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errText
}

// SetTarget switches the form between create and edit mode. The form is
// rebuilt from the target unconditionally, even if the target equals the
// previous one; user edits never survive a target change.
func (r *FormReconciler) SetTarget(e *core.Expense) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e == nil {
		r.editing = nil
	} else {
		cp := *e
		r.editing = &cp
	}
	r.form = core.NewFormState(r.editing)
}

// Update sets a single field from raw user input. Values are kept as
// entered; parsing happens at submit time.
func (r *FormReconciler) Update(field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form.Set(field, value)
}

// Submit validates the form and dispatches a create or an update depending
// on the current mode. On success a create resets the form to defaults; an
// update leaves the form as submitted and signals the page to clear the
// edit target. On any failure the form and mode are left untouched and the
// error slot is set.
func (r *FormReconciler) Submit(ctx context.Context) error {
	r.mu.Lock()
	form := r.form
	editing := r.editing
	r.mu.Unlock()

	fallback := createFallback
	op := log.OpCreate
	if editing != nil {
		fallback = updateFallback
		op = log.OpUpdate
	}

	payload, err := form.Payload()
	if err != nil {
		r.setErr(fallback)
		r.logger.WarnContext(ctx, "form rejected before dispatch", log.FieldOperation, op, log.FieldError, err)
		return err
	}

	if editing != nil {
		_, err = r.writer.UpdateExpense(ctx, r.session.Token, editing.ID, payload)
	} else {
		_, err = r.writer.CreateExpense(ctx, r.session.Token, payload)
	}
	if err != nil {
		r.setErr(gateway.ErrorMessage(err, fallback))
		r.logger.ErrorContext(ctx, "submit failed", log.FieldOperation, op, log.FieldError, err)
		return err
	}

	r.mu.Lock()
	if editing == nil {
		r.form = core.FormState{}
	}
	r.errText = ""
	r.mu.Unlock()

	if editing != nil && r.OnUpdated != nil {
		r.OnUpdated()
	}
	if r.OnSaved != nil {
		r.OnSaved()
	}
	return nil
}

func (r *FormReconciler) setErr(msg string) {
	r.mu.Lock()
	r.errText = msg
	r.mu.Unlock()
}
