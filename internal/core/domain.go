package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	PeriodAll     Period = "all"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type (
	// Period selects a summary aggregation window.
	Period string

	// ID is the server-assigned expense identifier. It is opaque to the
	// client; the wire format may be a JSON string or number.
	ID string

	// Expense is a server-owned record. The client only ever holds a
	// transient copy: after any mutation the copy is refetched, never
	// patched locally.
	Expense struct {
		ID       ID      `json:"id"`
		Title    string  `json:"title"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Date     string  `json:"date"` // ISO-8601 date-time string
		Notes    string  `json:"notes,omitempty"`
	}

	// User is the authenticated profile returned by the gateway.
	User struct {
		ID        ID     `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}

	// Summary is one period-scoped aggregation. A response without a
	// categories field decodes to an empty breakdown, and a missing total
	// decodes to zero; neither is an error.
	Summary struct {
		Total      float64            `json:"total"`
		Categories map[string]float64 `json:"categories"`
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidLimit  = errors.New("limit must be a positive integer")
	ErrInvalidPage   = errors.New("page must be a positive integer")

	ErrUnknownFilterField = errors.New("unknown filter field")
	ErrUnknownPeriod      = errors.New("unknown summary period")
)

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expense id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// ParsePeriod validates a period key from user input.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.TrimSpace(s))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
	return p, nil
}

// IsValid reports whether p is one of the three known windows.
func (p Period) IsValid() bool {
	switch p {
	case PeriodAll, PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// DateOnly truncates an ISO-8601 date-time string to its date portion for
// form editing. Strings without a time component pass through unchanged.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
