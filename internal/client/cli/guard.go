package cli

import "minflow/internal/client/session"

// GuardResult is the outcome of a view entry guard: either the view may
// proceed, or the user should be sent to Redirect, optionally with a warning
type GuardResult struct {
	Allowed  bool
	Redirect string
	Warning  string
}

// RequireAuth admits authenticated sessions and redirects everyone else to
// login
func RequireAuth(s *session.Store) GuardResult {
	if s.IsAuthenticated() {
		return GuardResult{Allowed: true}
	}
	return GuardResult{Redirect: "login"}
}

// RequireAdmin admits authenticated admins. Authenticated non-admins are
// redirected away with a warning; unauthenticated users go to login.
func RequireAdmin(s *session.Store) GuardResult {
	if !s.IsAuthenticated() {
		return GuardResult{Redirect: "login"}
	}
	if !s.User().IsAdmin {
		return GuardResult{
			Redirect: "dashboard",
			Warning:  "Admin access required.",
		}
	}
	return GuardResult{Allowed: true}
}
