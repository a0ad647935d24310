package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
)

const token = "test-token"

func seeded() *Store {
	s := New(core.User{ID: "u1", Name: "Dev", Email: "dev@example.com"})
	s.Seed(
		core.Expense{Title: "Coffee", Amount: 3.5, Category: "Food", Date: "2025-01-10"},
		core.Expense{Title: "Bus", Amount: 2, Category: "Transport", Date: "2025-01-11"},
		core.Expense{Title: "Lunch", Amount: 12, Category: "Food", Date: "2025-01-12"},
	)
	return s
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	created, err := s.CreateExpense(ctx, token, core.ExpensePayload{
		Title: "Book", Amount: 20, Category: "Leisure", Date: "2025-01-13",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}

	got, err := s.GetExpense(ctx, token, created.ID)
	if err != nil || got.Title != "Book" {
		t.Fatalf("get: %+v, %v", got, err)
	}

	updated, err := s.UpdateExpense(ctx, token, created.ID, core.ExpensePayload{
		Title: "Novel", Amount: 25, Category: "Leisure", Date: "2025-01-13",
	})
	if err != nil || updated.Title != "Novel" || updated.ID != created.ID {
		t.Fatalf("update: %+v, %v", updated, err)
	}

	if err := s.DeleteExpense(ctx, token, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetExpense(ctx, token, created.ID); err == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestStoreListFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	food, err := s.ListExpenses(ctx, token, core.FilterState{Category: "Food", Limit: 10, Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(food) != 2 {
		t.Fatalf("category filter returned %d rows", len(food))
	}

	page2, err := s.ListExpenses(ctx, token, core.FilterState{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 1 || page2[0].Title != "Lunch" {
		t.Fatalf("page 2 = %+v", page2)
	}

	empty, err := s.ListExpenses(ctx, token, core.FilterState{Limit: 10, Page: 5})
	if err != nil || len(empty) != 0 {
		t.Fatalf("past-the-end page = %+v, %v", empty, err)
	}
}

func TestStoreSummaryWindows(t *testing.T) {
	ctx := context.Background()
	s := New(core.User{ID: "u1"})
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })
	s.Seed(
		core.Expense{Title: "Old", Amount: 100, Category: "Rent", Date: "2024-11-01"},
		core.Expense{Title: "Recent", Amount: 30, Category: "Food", Date: "2025-01-05"},
		core.Expense{Title: "Fresh", Amount: 5, Category: "Food", Date: "2025-01-18"},
	)

	all, err := s.ReadSummary(ctx, token, core.PeriodAll)
	if err != nil || all.Total != 135 {
		t.Fatalf("all summary = %+v, %v", all, err)
	}
	weekly, err := s.ReadSummary(ctx, token, core.PeriodWeekly)
	if err != nil || weekly.Total != 5 {
		t.Fatalf("weekly summary = %+v, %v", weekly, err)
	}
	monthly, err := s.ReadSummary(ctx, token, core.PeriodMonthly)
	if err != nil || monthly.Total != 35 {
		t.Fatalf("monthly summary = %+v, %v", monthly, err)
	}
	if monthly.Categories["Food"] != 35 {
		t.Fatalf("monthly categories = %+v", monthly.Categories)
	}
}

func TestStoreRejectsMissingToken(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	_, err := s.ListExpenses(ctx, "", core.DefaultFilter())
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestStoreProfile(t *testing.T) {
	s := seeded()
	u, err := s.ReadProfile(context.Background(), token)
	if err != nil || u.Name != "Dev" {
		t.Fatalf("profile = %+v, %v", u, err)
	}
}
