package gateway

import (
	"context"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

// Ports consumed by the state components. The remote REST client and the
// in-memory store both implement all of them; consumers declare only the
// slice they need.
type (
	ExpenseLister interface {
		ListExpenses(ctx context.Context, token string, filter core.FilterState) ([]core.Expense, error)
	}

	ExpenseReader interface {
		GetExpense(ctx context.Context, token string, id core.ID) (core.Expense, error)
	}

	ExpenseWriter interface {
		CreateExpense(ctx context.Context, token string, p core.ExpensePayload) (core.Expense, error)
		UpdateExpense(ctx context.Context, token string, id core.ID, p core.ExpensePayload) (core.Expense, error)
	}

	ExpenseDeleter interface {
		DeleteExpense(ctx context.Context, token string, id core.ID) error
	}

	SummaryReader interface {
		ReadSummary(ctx context.Context, token string, period core.Period) (core.Summary, error)
	}

	ProfileReader interface {
		ReadProfile(ctx context.Context, token string) (core.User, error)
	}
)

// Gateway is the full remote API surface.
type Gateway interface {
	ExpenseLister
	ExpenseReader
	ExpenseWriter
	ExpenseDeleter
	SummaryReader
	ProfileReader
}
