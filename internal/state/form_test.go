package state

import (
	"context"
	"errors"
	"testing"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway/memory"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func testSession() Session {
	return Session{Token: "token", User: core.User{ID: "1", Name: "Shobhit"}}
}

// failingWriter rejects every dispatch with a fixed error.
type failingWriter struct {
	err error
}

func (w failingWriter) CreateExpense(context.Context, string, core.ExpensePayload) (core.Expense, error) {
	return core.Expense{}, w.err
}

func (w failingWriter) UpdateExpense(context.Context, string, core.ID, core.ExpensePayload) (core.Expense, error) {
	return core.Expense{}, w.err
}

func TestFormReconciler_SetTargetRebuildsForm(t *testing.T) {
	store := memory.New(core.User{ID: "1"})
	r := NewFormReconciler(testSession(), store, testLogger())

	if err := r.Update("title", "Draft"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := r.Update("amount", "12.50"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	target := core.Expense{ID: "7", Title: "Groceries", Amount: 42.5, Category: "Food", Date: "2026-08-12T00:00:00.000Z"}
	r.SetTarget(&target)

	form := r.Form()
	if form.Title != "Groceries" || form.Amount != "42.5" || form.Category != "Food" {
		t.Fatalf("unexpected form after target change: %+v", form)
	}
	if form.Date != "2026-08-12" {
		t.Fatalf("date not truncated: %q", form.Date)
	}
	if _, editing := r.Editing(); !editing {
		t.Fatal("expected edit mode")
	}

	// In-progress edits are discarded every time the target changes, even
	// back to create mode.
	if err := r.Update("title", "Edited"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	r.SetTarget(nil)
	if form := r.Form(); form != (core.FormState{}) {
		t.Fatalf("expected empty form in create mode, got %+v", form)
	}
}

func TestFormReconciler_ZeroAmountCoercesToEmpty(t *testing.T) {
	store := memory.New(core.User{ID: "1"})
	r := NewFormReconciler(testSession(), store, testLogger())

	r.SetTarget(&core.Expense{ID: "3", Title: "Gift", Amount: 0, Category: "Misc", Date: "2026-01-01"})
	if got := r.Form().Amount; got != "" {
		t.Fatalf("zero amount should render empty, got %q", got)
	}
}

func TestFormReconciler_SubmitCreateResetsForm(t *testing.T) {
	store := memory.New(core.User{ID: "1"})
	r := NewFormReconciler(testSession(), store, testLogger())

	saved := 0
	r.OnSaved = func() { saved++ }

	for field, value := range map[string]string{
		"title":    "Coffee",
		"amount":   "3.50",
		"category": "Food",
		"date":     "2026-08-30",
	} {
		if err := r.Update(field, value); err != nil {
			t.Fatalf("Update(%s): %v", field, err)
		}
	}

	if err := r.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if saved != 1 {
		t.Fatalf("OnSaved fired %d times, want 1", saved)
	}
	if form := r.Form(); form != (core.FormState{}) {
		t.Fatalf("create should reset the form, got %+v", form)
	}
	if r.Err() != "" {
		t.Fatalf("unexpected error after success: %q", r.Err())
	}

	got, err := store.ListExpenses(context.Background(), "token", core.DefaultFilter())
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Coffee" || got[0].Amount != 3.5 {
		t.Fatalf("unexpected stored expense: %+v", got)
	}
}

func TestFormReconciler_SubmitUpdateSignalsTargetClear(t *testing.T) {
	store := memory.New(core.User{ID: "1"})
	store.Seed(core.Expense{Title: "Lunch", Amount: 10, Category: "Food", Date: "2026-08-01"})

	r := NewFormReconciler(testSession(), store, testLogger())
	var updated, saved bool
	r.OnUpdated = func() { updated = true }
	r.OnSaved = func() { saved = true }

	target, err := store.GetExpense(context.Background(), "token", "1")
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	r.SetTarget(&target)
	if err := r.Update("amount", "15"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := r.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !updated || !saved {
		t.Fatalf("callbacks: updated=%v saved=%v", updated, saved)
	}
	// The page owns clearing the target; the form is left as submitted.
	if form := r.Form(); form.Amount != "15" {
		t.Fatalf("update must not reset the form, got %+v", form)
	}

	stored, err := store.GetExpense(context.Background(), "token", "1")
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if stored.Amount != 15 {
		t.Fatalf("amount not updated: %v", stored.Amount)
	}
}

func TestFormReconciler_InvalidAmountRejectedBeforeDispatch(t *testing.T) {
	r := NewFormReconciler(testSession(), failingWriter{err: errors.New("must not be called")}, testLogger())

	r.SetTarget(&core.Expense{ID: "2", Title: "Rent", Amount: 900, Category: "Housing", Date: "2026-08-01"})
	if err := r.Update("amount", "abc"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	err := r.Submit(context.Background())
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if r.Err() != "Failed to update expense" {
		t.Fatalf("unexpected error slot: %q", r.Err())
	}
	// Failure keeps the form and the edit mode intact.
	if form := r.Form(); form.Amount != "abc" {
		t.Fatalf("form changed on failure: %+v", form)
	}
	if _, editing := r.Editing(); !editing {
		t.Fatal("edit mode lost on failure")
	}
}

func TestFormReconciler_ServerMessageShownVerbatim(t *testing.T) {
	r := NewFormReconciler(testSession(), failingWriter{err: &gateway.APIError{StatusCode: 400, Message: "Amount exceeds budget"}}, testLogger())

	for field, value := range map[string]string{
		"title": "Laptop", "amount": "2000", "category": "Tech", "date": "2026-08-30",
	} {
		if err := r.Update(field, value); err != nil {
			t.Fatalf("Update(%s): %v", field, err)
		}
	}

	if err := r.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if r.Err() != "Amount exceeds budget" {
		t.Fatalf("unexpected error slot: %q", r.Err())
	}
}

func TestFormReconciler_TransportFailureUsesFallback(t *testing.T) {
	r := NewFormReconciler(testSession(), failingWriter{err: errors.New("connection refused")}, testLogger())

	for field, value := range map[string]string{
		"title": "Bus", "amount": "2", "category": "Transport", "date": "2026-08-30",
	} {
		if err := r.Update(field, value); err != nil {
			t.Fatalf("Update(%s): %v", field, err)
		}
	}

	if err := r.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if r.Err() != "Failed to add expense" {
		t.Fatalf("unexpected error slot: %q", r.Err())
	}
}
