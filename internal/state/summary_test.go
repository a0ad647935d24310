package state

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

// periodReader serves fixed summaries per period and can fail selectively.
type periodReader struct {
	summaries map[core.Period]core.Summary
	failures  map[core.Period]error
	calls     atomic.Int32
}

func (r *periodReader) ReadSummary(_ context.Context, _ string, p core.Period) (core.Summary, error) {
	r.calls.Add(1)
	if err, ok := r.failures[p]; ok {
		return core.Summary{}, err
	}
	return r.summaries[p], nil
}

func threePeriodReader() *periodReader {
	return &periodReader{
		summaries: map[core.Period]core.Summary{
			core.PeriodAll:     {Total: 300, Categories: map[string]float64{"Food": 200, "Transport": 100}},
			core.PeriodWeekly:  {Total: 50, Categories: map[string]float64{"Food": 50}},
			core.PeriodMonthly: {Total: 120, Categories: map[string]float64{"Food": 80, "Transport": 40}},
		},
	}
}

func TestSummaryAggregator_LoadFillsAllSlots(t *testing.T) {
	reader := threePeriodReader()
	a := NewSummaryAggregator(testSession(), reader, testLogger())

	if !a.Loading() {
		t.Fatal("expected loading before Load")
	}

	a.Load(context.Background())
	if got := reader.calls.Load(); got != 3 {
		t.Fatalf("got %d fetches, want 3", got)
	}
	if a.Loading() {
		t.Fatal("still loading after Load")
	}
	for _, p := range []core.Period{core.PeriodAll, core.PeriodWeekly, core.PeriodMonthly} {
		s, ok := a.Summary(p)
		if !ok {
			t.Fatalf("missing slot for %s", p)
		}
		if s.Total == 0 {
			t.Fatalf("empty summary for %s", p)
		}
	}

	// A second Load is a no-op.
	a.Load(context.Background())
	if got := reader.calls.Load(); got != 3 {
		t.Fatalf("second Load refetched: %d calls", got)
	}
}

func TestSummaryAggregator_SelectPeriodIsViewOnly(t *testing.T) {
	reader := threePeriodReader()
	a := NewSummaryAggregator(testSession(), reader, testLogger())
	a.Load(context.Background())
	fetched := reader.calls.Load()

	if err := a.SelectPeriod(core.PeriodWeekly); err != nil {
		t.Fatalf("SelectPeriod: %v", err)
	}
	if got, ok := a.Current(); !ok || got.Total != 50 {
		t.Fatalf("current = %+v, %v", got, ok)
	}
	if reader.calls.Load() != fetched {
		t.Fatal("period switch triggered a fetch")
	}

	if err := a.SelectPeriod(core.Period("yearly")); !errors.Is(err, core.ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
	if a.Selected() != core.PeriodWeekly {
		t.Fatalf("selection changed on invalid period: %s", a.Selected())
	}
}

func TestSummaryAggregator_PartialFailureKeepsOtherSlots(t *testing.T) {
	reader := threePeriodReader()
	reader.failures = map[core.Period]error{core.PeriodWeekly: errors.New("timeout")}
	a := NewSummaryAggregator(testSession(), reader, testLogger())

	a.Load(context.Background())
	if got := reader.calls.Load(); got != 3 {
		t.Fatalf("a failing period cancelled siblings: %d calls", got)
	}
	if _, ok := a.Summary(core.PeriodAll); !ok {
		t.Fatal("all-time slot missing despite only weekly failing")
	}
	if _, ok := a.Summary(core.PeriodWeekly); ok {
		t.Fatal("failed slot should stay empty")
	}
	if a.Err() != "Failed to fetch weekly summary" {
		t.Fatalf("unexpected error slot: %q", a.Err())
	}
}

func TestSummaryAggregator_LoadingGatedOnAllTimeSlot(t *testing.T) {
	reader := threePeriodReader()
	reader.failures = map[core.Period]error{core.PeriodAll: errors.New("timeout")}
	a := NewSummaryAggregator(testSession(), reader, testLogger())

	a.Load(context.Background())
	// The all-time slot never resolved, but the error display takes over
	// from the loading state.
	if a.Loading() {
		t.Fatal("error state should end loading")
	}
	if a.Err() != "Failed to fetch all summary" {
		t.Fatalf("unexpected error slot: %q", a.Err())
	}
}

func TestSummaryAggregator_NoSessionNoFetch(t *testing.T) {
	reader := threePeriodReader()
	a := NewSummaryAggregator(Session{}, reader, testLogger())

	a.Load(context.Background())
	if got := reader.calls.Load(); got != 0 {
		t.Fatalf("fetched without a session: %d calls", got)
	}
}
