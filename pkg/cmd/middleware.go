package cmd

// Middleware wraps an action (e.g. logging, permission check, guild-only).
type Middleware func(Action) Action

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(a Action, mws ...Middleware) Action {
	for i := len(mws) - 1; i >= 0; i-- {
		a = mws[i](a)
	}
	return a
}
