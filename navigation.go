package session

// NavigationIntent is an explicit redirect decision. The state machine and the
// guards emit intents; the hosting shell decides what acting on one means.
type NavigationIntent string

const (
	// NavNone means stay where you are
	NavNone NavigationIntent = ""
	// NavToLogin targets the unauthenticated landing screen
	NavToLogin NavigationIntent = "login"
	// NavToDashboard targets the default authenticated landing screen
	NavToDashboard NavigationIntent = "dashboard"
)

// NavigatorFunc adapts a function into a Navigator.
type NavigatorFunc func(intent NavigationIntent)

// Navigate satisfies the Navigator interface.
func (f NavigatorFunc) Navigate(intent NavigationIntent) {
	if f == nil || intent == NavNone {
		return
	}
	f(intent)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(NavigationIntent) {}

func normalizeNavigator(n Navigator) Navigator {
	if n == nil {
		return noopNavigator{}
	}
	return n
}
