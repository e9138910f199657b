// Package access decides whether a session may enter a role-restricted view.
package access

import (
	"github.com/belajarku/belajarku-bot/internal/domain/entities"
	"github.com/belajarku/belajarku-bot/internal/session"
)

// Decision is the outcome of gating one view for one session.
type Decision int

const (
	// Allow admits the session to the requested view.
	Allow Decision = iota
	// RedirectAuth sends an anonymous session to the login flow.
	RedirectAuth
	// RedirectHome bounces an authenticated session whose role is not in
	// the required set back to its own home view.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectAuth:
		return "redirect-auth"
	case RedirectHome:
		return "redirect-home"
	}
	return "invalid"
}

// Decide gates a settled session against a required role set. It holds no
// state and is re-evaluated on every navigation. Callers must not invoke it
// before the session settles; an unsettled snapshot gates like an anonymous
// one, which is the fail-closed reading.
func Decide(snap session.Snapshot, requiredRoles ...entities.Role) Decision {
	if !snap.Authenticated() {
		return RedirectAuth
	}

	for _, role := range requiredRoles {
		if snap.User.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
