package http

import (
	"net/http"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

type expensesPageData struct {
	Title    string
	Active   string
	UserName string

	Error         string
	Filter        core.FilterState
	Form          core.FormState
	Editing       bool
	EditingID     core.ID
	Expenses      []core.Expense
	PendingDelete string
	Detail        *core.Expense
}

var formFields = []string{"title", "amount", "category", "date", "notes"}

func (s *Server) handleExpensesPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.list.Start(ctx)

	query := r.URL.Query()
	if query.Has("category") || query.Has("limit") || query.Has("page") {
		for _, field := range []string{"category", "limit", "page"} {
			if !query.Has(field) {
				continue
			}
			if err := s.list.SetFilter(field, query.Get(field)); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if err := s.list.Apply(ctx); err != nil {
			s.logger.WarnContext(ctx, "filter apply failed", log.FieldError, err)
		}
	}

	data := expensesPageData{
		Title:    "Expenses",
		Active:   "expenses",
		UserName: s.session.User.Name,
		Filter:   s.list.Filter(),
		Form:     s.form.Form(),
		Expenses: s.list.Expenses(),
	}
	if target, ok := s.form.Editing(); ok {
		data.Editing = true
		data.EditingID = target.ID
	}
	if id, ok := s.list.PendingDelete(); ok {
		data.PendingDelete = string(id)
	}
	if detail, ok := s.detail.Detail(); ok {
		data.Detail = &detail
	}
	data.Error = firstNonEmpty(s.form.Err(), s.list.Err(), s.detail.Err())

	s.render(w, r, "expenses.html", data)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	// The posted editing_id must match the current edit target. A mismatch
	// means the form was rendered against a different target (for example a
	// second tab switched modes after this page loaded); applying it could
	// update the wrong record.
	postedID := core.ID(r.Form.Get("editing_id"))
	currentID := core.ID("")
	if target, ok := s.form.Editing(); ok {
		currentID = target.ID
	}
	if postedID != currentID {
		http.Error(w, "edit target changed, reload the page", http.StatusConflict)
		return
	}
	for _, field := range formFields {
		if err := s.form.Update(field, r.Form.Get(field)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	// Validation and gateway failures land in the form's error slot and
	// are rendered on the next page load.
	_ = s.form.Submit(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PostFormValue("id"))
	for _, e := range s.list.Expenses() {
		if e.ID == id {
			s.form.SetTarget(&e)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	http.Error(w, "expense not found", http.StatusNotFound)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PostFormValue("id"))
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	_ = s.detail.View(r.Context(), id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDetailClose(w http.ResponseWriter, r *http.Request) {
	s.detail.Close()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := core.ID(r.PostFormValue("id"))
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	s.list.RequestDelete(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	if err := s.list.ConfirmDelete(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "delete failed", log.FieldError, err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteCancel(w http.ResponseWriter, r *http.Request) {
	s.list.CancelDelete()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "template execution failed",
			"template", name, log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
