// Package state implements the client-side reconciliation components: the
// shared create/edit form, the synchronized expense list, the period
// summary aggregator and the on-demand detail viewer.
//
// All components follow the same consistency model: server data is only
// ever replaced wholesale from a fresh fetch, never patched locally, and
// every mutation is followed by a refetch. In-flight requests are not
// cancelled when superseded; the last response to arrive wins.
package state

import (
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

// Session is the read-only authentication context injected into every
// component at construction. It carries the bearer credential and the
// identity it belongs to; ownership of both stays with the caller.
type Session struct {
	Token string
	User  core.User
}

// Valid reports whether the session carries a credential. Components stay
// idle until they are started with a valid session.
func (s Session) Valid() bool {
	return s.Token != ""
}
