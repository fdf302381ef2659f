// Package session implements the client-side session and authorization layer
// for the hiring platform: token persistence and decoding, the session
// lifecycle state machine, and role-based route guards.
//
// Session lifecycle:
//   - Manager owns the canonical in-memory session state. It starts in
//     StatusInitializing, reads the TokenStore, decodes and expiry-checks the
//     token locally, confirms the user against the backend profile endpoint,
//     and resolves to StatusAuthenticated or StatusUnauthenticated. Every
//     failure path is fail-closed: the store is cleared and the state resolves
//     to unauthenticated rather than surfacing an error to consumers.
//   - Initialize is single-flight. Concurrent invocations (re-renders,
//     duplicate bootstraps) collapse into one profile fetch and every caller
//     observes the same resolved snapshot.
//
// Navigation:
//   - The Manager and the route guards never navigate directly. They emit
//     NavigationIntent values that the hosting shell interprets, which keeps
//     transitions unit-testable without a UI environment.
//
// Authorization:
//   - Role is authoritative only from the server-confirmed user carried in the
//     login response or profile fetch. Decoded token claims may omit or lie
//     about the role, so guards never consult them.
package session
