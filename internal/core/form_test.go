package core

import (
	"errors"
	"testing"
)

func TestNewFormStateFromExpense(t *testing.T) {
	e := &Expense{
		ID:       "7",
		Title:    "Coffee",
		Amount:   3.5,
		Category: "Food",
		Date:     "2025-01-10T00:00:00.000Z",
		Notes:    "morning",
	}
	got := NewFormState(e)
	want := FormState{
		Title:    "Coffee",
		Amount:   "3.5",
		Category: "Food",
		Date:     "2025-01-10",
		Notes:    "morning",
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNewFormStateZeroAmountCoercesToEmpty(t *testing.T) {
	got := NewFormState(&Expense{Title: "Free", Amount: 0, Date: "2025-01-10"})
	if got.Amount != "" {
		t.Fatalf("zero amount should coerce to empty string, got %q", got.Amount)
	}
}

func TestNewFormStateNilYieldsDefaults(t *testing.T) {
	if got := NewFormState(nil); got != (FormState{}) {
		t.Fatalf("expected empty defaults, got %+v", got)
	}
}

func TestFormStateSet(t *testing.T) {
	var f FormState
	for _, field := range []string{"title", "amount", "category", "date", "notes"} {
		if err := f.Set(field, "x"); err != nil {
			t.Fatalf("Set(%q) failed: %v", field, err)
		}
	}
	if f.Title != "x" || f.Amount != "x" || f.Category != "x" || f.Date != "x" || f.Notes != "x" {
		t.Fatalf("fields not set: %+v", f)
	}
	if err := f.Set("color", "red"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestFormStatePayload(t *testing.T) {
	tests := []struct {
		name    string
		form    FormState
		wantErr error
	}{
		{
			name: "valid",
			form: FormState{Title: "Coffee", Amount: "3.50", Category: "Food", Date: "2025-01-10"},
		},
		{
			name:    "non-numeric amount",
			form:    FormState{Title: "Coffee", Amount: "abc", Category: "Food", Date: "2025-01-10"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			form:    FormState{Title: "Coffee", Amount: "-1", Category: "Food", Date: "2025-01-10"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "empty title",
			form:    FormState{Title: "  ", Amount: "1", Category: "Food", Date: "2025-01-10"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty category",
			form:    FormState{Title: "Coffee", Amount: "1", Category: "", Date: "2025-01-10"},
			wantErr: ErrEmptyCategory,
		},
		{
			name:    "bad date",
			form:    FormState{Title: "Coffee", Amount: "1", Category: "Food", Date: "2025-13-40"},
			wantErr: ErrInvalidDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.form.Payload()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Amount != 3.5 {
				t.Fatalf("amount not parsed to number: %v", p.Amount)
			}
			if p.Title != tt.form.Title || p.Category != tt.form.Category || p.Date != tt.form.Date {
				t.Fatalf("payload fields not verbatim: %+v", p)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3.50", 3.5, true},
		{" 12 ", 12, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-5", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseAmount(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}
