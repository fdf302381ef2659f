package session

// GuardAction is what the hosting shell should do with a guarded screen.
type GuardAction string

const (
	// GuardLoading renders a neutral placeholder; no navigation may happen yet
	GuardLoading GuardAction = "loading"
	// GuardRender renders the guarded content
	GuardRender GuardAction = "render"
	// GuardRedirect renders nothing and acts on the intent
	GuardRedirect GuardAction = "redirect"
)

// GuardDecision pairs an action with the redirect intent to act on. Decisions
// are pure values; re-evaluate whenever the snapshot or allow-list changes,
// not just once at mount.
type GuardDecision struct {
	Action GuardAction
	Intent NavigationIntent
}

// Render reports whether the guarded content should be shown.
func (d GuardDecision) Render() bool {
	return d.Action == GuardRender
}

// RequireAuth gates a screen to authenticated users whose role is in
// allowedRoles. While the session is still initializing it withholds any
// decision so a redirect is never issued against transient default state.
// A role mismatch lands on the default authenticated screen; there is no
// dedicated forbidden screen.
func RequireAuth(snap Snapshot, allowedRoles []UserRole) GuardDecision {
	if snap.Initializing {
		return GuardDecision{Action: GuardLoading}
	}

	if !snap.Authenticated() {
		return GuardDecision{Action: GuardRedirect, Intent: NavToLogin}
	}

	if !RoleAllowed(snap.User.UserType, allowedRoles) {
		return GuardDecision{Action: GuardRedirect, Intent: NavToDashboard}
	}

	return GuardDecision{Action: GuardRender}
}

// RequireGuest gates a screen to unauthenticated visitors, e.g. the login
// form. The wrapped content stays visible while initializing; only a confirmed
// session pushes the visitor to the authenticated landing screen.
func RequireGuest(snap Snapshot) GuardDecision {
	if snap.Initializing || !snap.Authenticated() {
		return GuardDecision{Action: GuardRender}
	}
	return GuardDecision{Action: GuardRedirect, Intent: NavToDashboard}
}

// CanAccess is a non-redirecting predicate for conditional UI such as
// showing or hiding a button. It does not observe Initializing, so it must
// never be the sole protection for a guarded screen.
func CanAccess(snap Snapshot, allowedRoles []UserRole) bool {
	if !snap.Authenticated() {
		return false
	}
	return RoleAllowed(snap.User.UserType, allowedRoles)
}
