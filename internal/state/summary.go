package state

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/gateway"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

// SummaryAggregator fetches the all-time, weekly and monthly summaries
// concurrently and keeps one slot per period. Period selection is a pure
// view switch over already-fetched data; it never triggers a fetch.
type SummaryAggregator struct {
	session Session
	reader  gateway.SummaryReader
	logger  *log.Logger

	mu       sync.Mutex
	slots    map[core.Period]*core.Summary
	selected core.Period
	errText  string
	started  bool
}

// NewSummaryAggregator returns an aggregator with empty slots and the
// all-time period selected.
func NewSummaryAggregator(session Session, reader gateway.SummaryReader, logger *log.Logger) *SummaryAggregator {
	return &SummaryAggregator{
		session:  session,
		reader:   reader,
		logger:   logger.WithComponent(log.ComponentSummary),
		slots:    make(map[core.Period]*core.Summary),
		selected: core.PeriodAll,
	}
}

// Load fetches all three period summaries concurrently, exactly once. The
// three fetches are independent: one failing does not cancel the others,
// and each success fills its own slot. The error slot keeps the message of
// the last failure to resolve.
func (a *SummaryAggregator) Load(ctx context.Context) {
	a.mu.Lock()
	if !a.session.Valid() || a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, period := range []core.Period{core.PeriodAll, core.PeriodWeekly, core.PeriodMonthly} {
		g.Go(func() error {
			sum, err := a.reader.ReadSummary(ctx, a.session.Token, period)
			a.mu.Lock()
			defer a.mu.Unlock()
			if err != nil {
				a.errText = gateway.ErrorMessage(err, "Failed to fetch "+string(period)+" summary")
				a.logger.ErrorContext(ctx, "summary fetch failed",
					log.FieldOperation, log.OpSummary,
					log.FieldPeriod, string(period),
					log.FieldError, err)
				// A nil return keeps the sibling fetches running.
				return nil
			}
			a.slots[period] = &sum
			return nil
		})
	}
	_ = g.Wait()
}

// SelectPeriod switches the active view. Invalid periods are rejected and
// the previous selection stays.
func (a *SummaryAggregator) SelectPeriod(p core.Period) error {
	if !p.IsValid() {
		return core.ErrUnknownPeriod
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected = p
	return nil
}

// Selected returns the active period.
func (a *SummaryAggregator) Selected() core.Period {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// Summary returns the slot for a period, or false if it has not resolved.
func (a *SummaryAggregator) Summary(p core.Period) (core.Summary, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.slots[p]
	if !ok {
		return core.Summary{}, false
	}
	return *s, true
}

// Current returns the slot for the selected period, or false.
func (a *SummaryAggregator) Current() (core.Summary, bool) {
	a.mu.Lock()
	selected := a.selected
	a.mu.Unlock()
	return a.Summary(selected)
}

// Loading reports whether the component is still in its loading state.
// Resolution is gated on the all-time slot alone: until it arrives the
// whole component counts as loading, unless an error has been recorded.
func (a *SummaryAggregator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errText == "" && a.slots[core.PeriodAll] == nil
}

// Err returns the message from the last failed fetch, or "".
func (a *SummaryAggregator) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errText
}
