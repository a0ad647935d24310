// Package memory provides an in-process gateway implementation. It backs
// tests and the no-network development backend; semantics mirror the
// remote API closely enough for the state components not to notice.
package memory

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
)

// Store holds expenses in memory, keyed by a synthetic numeric id.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
	user   core.User
	now    func() time.Time
}

var _ gateway.Gateway = (*Store)(nil)

// New creates an empty store owned by the given profile.
func New(user core.User) *Store {
	return &Store{nextID: 1, user: user, now: time.Now}
}

// SetClock overrides the time source used for summary windows (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Seed inserts expenses directly, assigning ids as a create would.
func (s *Store) Seed(expenses ...core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range expenses {
		e.ID = core.ID(strconv.FormatInt(s.nextID, 10))
		s.nextID++
		s.items = append(s.items, e)
	}
}

// ListExpenses returns one page filtered by category, newest first within
// insertion order being preserved.
func (s *Store) ListExpenses(_ context.Context, token string, filter core.FilterState) ([]core.Expense, error) {
	if err := authorize(token); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Expense
	for _, e := range s.items {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		matched = append(matched, e)
	}

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]core.Expense, end-start)
	copy(page, matched[start:end])
	return page, nil
}

func (s *Store) GetExpense(_ context.Context, token string, id core.ID) (core.Expense, error) {
	if err := authorize(token); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, notFound()
}

func (s *Store) CreateExpense(_ context.Context, token string, p core.ExpensePayload) (core.Expense, error) {
	if err := authorize(token); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := fromPayload(p)
	e.ID = core.ID(strconv.FormatInt(s.nextID, 10))
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, token string, id core.ID, p core.ExpensePayload) (core.Expense, error) {
	if err := authorize(token); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			updated := fromPayload(p)
			updated.ID = id
			s.items[i] = updated
			return updated, nil
		}
	}
	return core.Expense{}, notFound()
}

func (s *Store) DeleteExpense(_ context.Context, token string, id core.ID) error {
	if err := authorize(token); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return notFound()
}

// ReadSummary aggregates stored expenses. The weekly window covers the
// last 7 days and the monthly window the last 30, counted from the store's
// clock.
func (s *Store) ReadSummary(_ context.Context, token string, period core.Period) (core.Summary, error) {
	if err := authorize(token); err != nil {
		return core.Summary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var since time.Time
	switch period {
	case core.PeriodWeekly:
		since = s.now().AddDate(0, 0, -7)
	case core.PeriodMonthly:
		since = s.now().AddDate(0, 0, -30)
	}

	summary := core.Summary{Categories: map[string]float64{}}
	for _, e := range s.items {
		if !since.IsZero() {
			d, err := time.Parse("2006-01-02", core.DateOnly(e.Date))
			if err != nil || d.Before(since) {
				continue
			}
		}
		summary.Total += e.Amount
		summary.Categories[e.Category] += e.Amount
	}
	return summary, nil
}

func (s *Store) ReadProfile(_ context.Context, token string) (core.User, error) {
	if err := authorize(token); err != nil {
		return core.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

func fromPayload(p core.ExpensePayload) core.Expense {
	return core.Expense{
		Title:    p.Title,
		Amount:   p.Amount,
		Category: p.Category,
		Date:     p.Date,
		Notes:    p.Notes,
	}
}

func authorize(token string) error {
	if token == "" {
		return &gateway.APIError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	return nil
}

func notFound() error {
	return &gateway.APIError{StatusCode: http.StatusNotFound, Message: "Expense not found"}
}
