package core

import (
	"net/url"
	"strconv"
)

// FilterState drives the expense list query. It is client-local; changing
// it never issues a request by itself, the list refetches only on an
// explicit apply.
type FilterState struct {
	Category string
	Limit    int
	Page     int
}

// DefaultFilter matches the server defaults of limit=10, page=1.
func DefaultFilter() FilterState {
	return FilterState{Limit: 10, Page: 1}
}

// Set replaces one filter field from its text representation. Limit and
// page must parse as positive integers; on failure the previous value is
// left untouched.
func (f *FilterState) Set(field, value string) error {
	switch field {
	case "category":
		f.Category = value
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return ErrInvalidLimit
		}
		f.Limit = n
	case "page":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return ErrInvalidPage
		}
		f.Page = n
	default:
		return ErrUnknownFilterField
	}
	return nil
}

// Validate checks the positive-integer invariants on limit and page.
func (f FilterState) Validate() error {
	if f.Limit < 1 {
		return ErrInvalidLimit
	}
	if f.Page < 1 {
		return ErrInvalidPage
	}
	return nil
}

// Values serializes the filter as list query parameters. All three keys
// are always present, including an empty category.
func (f FilterState) Values() url.Values {
	v := url.Values{}
	v.Set("category", f.Category)
	v.Set("limit", strconv.Itoa(f.Limit))
	v.Set("page", strconv.Itoa(f.Page))
	return v
}
