// Package core provides the domain types and the string/typed conversion
// boundaries for the expense tracker front-end.
//
// This file contains the FormState that backs the shared create/edit form
// and the single point where its text fields are parsed into a typed
// submission payload.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormState is the transient, string-only field set backing the create/edit
// form. Every field is always present (empty string, never absent). It is
// derived wholesale from the entity being edited and never partially
// merged with previous contents.
type FormState struct {
	Title    string
	Amount   string
	Category string
	Date     string
	Notes    string
}

// ExpensePayload is the typed submission body sent to the gateway. Amount
// is numeric here; the string-to-number conversion happens exactly once,
// in FormState.Payload, and unparsed text never travels past it.
type ExpensePayload struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

// NewFormState derives form fields from the expense being edited, or the
// empty default when there is none. A zero amount coerces to the empty
// string, and the date keeps only its date portion.
func NewFormState(e *Expense) FormState {
	if e == nil {
		return FormState{}
	}
	amount := ""
	if e.Amount != 0 {
		amount = strconv.FormatFloat(e.Amount, 'f', -1, 64)
	}
	return FormState{
		Title:    e.Title,
		Amount:   amount,
		Category: e.Category,
		Date:     DateOnly(e.Date),
		Notes:    e.Notes,
	}
}

// Set replaces exactly one field. Unknown field names are rejected so a
// wiring mistake in the page layer cannot silently drop keystrokes.
func (f *FormState) Set(field, value string) error {
	switch field {
	case "title":
		f.Title = value
	case "amount":
		f.Amount = value
	case "category":
		f.Category = value
	case "date":
		f.Date = value
	case "notes":
		f.Notes = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

// Payload converts the form into a typed submission body, or fails with a
// validation error before any request is issued. It enforces what native
// input constraints would: required text presence, a parseable
// non-negative amount, and a valid calendar date.
func (f FormState) Payload() (ExpensePayload, error) {
	if strings.TrimSpace(f.Title) == "" {
		return ExpensePayload{}, ErrEmptyTitle
	}
	if strings.TrimSpace(f.Category) == "" {
		return ExpensePayload{}, ErrEmptyCategory
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return ExpensePayload{}, err
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(f.Date)); err != nil {
		return ExpensePayload{}, ErrInvalidDate
	}
	return ExpensePayload{
		Title:    f.Title,
		Amount:   amount,
		Category: f.Category,
		Date:     f.Date,
		Notes:    f.Notes,
	}, nil
}

// ParseAmount parses a decimal amount from form text. Non-numeric text,
// NaN, infinities and negative values are all rejected; a payload is never
// built from them.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
