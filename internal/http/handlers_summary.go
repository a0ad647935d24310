package http

import (
	"net/http"
	"sort"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

type summaryPageData struct {
	Title    string
	Active   string
	UserName string

	Error      string
	Loading    bool
	Periods    []core.Period
	Selected   core.Period
	HasData    bool
	Total      float64
	Categories []categoryRow
}

type categoryRow struct {
	Name   string
	Amount float64
}

func (s *Server) handleSummaryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.summary.Load(ctx)

	if raw := r.URL.Query().Get("period"); raw != "" {
		period, err := core.ParsePeriod(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.summary.SelectPeriod(period); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	data := summaryPageData{
		Title:    "Summary",
		Active:   "summary",
		UserName: s.session.User.Name,
		Error:    s.summary.Err(),
		Loading:  s.summary.Loading(),
		Periods:  []core.Period{core.PeriodAll, core.PeriodWeekly, core.PeriodMonthly},
		Selected: s.summary.Selected(),
	}
	if sum, ok := s.summary.Current(); ok {
		data.HasData = true
		data.Total = sum.Total
		data.Categories = sortedCategories(sum.Categories)
	}

	s.render(w, r, "summary.html", data)
}

func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sum, ok := s.summary.Summary(period)
	if !ok {
		http.Error(w, "summary not loaded", http.StatusNotFound)
		return
	}

	key := string(period)
	png, cached := s.chartCache.Get(key)
	if !cached {
		png, err = s.renderer.CategoryPie(sum)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "chart render failed",
				log.FieldPeriod, key, log.FieldError, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if png != nil {
			s.chartCache.Set(key, png)
		}
	}
	if png == nil {
		http.Error(w, "no category data", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func sortedCategories(categories map[string]float64) []categoryRow {
	rows := make([]categoryRow, 0, len(categories))
	for name, amount := range categories {
		rows = append(rows, categoryRow{Name: name, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
