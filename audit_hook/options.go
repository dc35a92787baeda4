package audithook

import "log/slog"

// Option configures an Extension.
type Option func(*Extension)

// WithLogger sets the logger used when the recorder fails.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithEnabledActions audits only the given actions.
// If neither this nor WithDisabledActions is used, all actions are audited.
func WithEnabledActions(actions ...string) Option {
	return func(e *Extension) {
		e.enabled = make(map[string]bool, len(actions))
		for _, action := range actions {
			e.enabled[action] = true
		}
	}
}

// WithDisabledActions skips the given actions.
func WithDisabledActions(actions ...string) Option {
	return func(e *Extension) {
		if e.enabled == nil {
			e.enabled = make(map[string]bool)
			for _, action := range allActions() {
				e.enabled[action] = true
			}
		}
		for _, action := range actions {
			delete(e.enabled, action)
		}
	}
}

// WithRejectionsOnly audits rejected check-ins and checkouts and the garage
// filling up, and nothing else.
func WithRejectionsOnly() Option {
	return WithEnabledActions(
		ActionCheckinRejected,
		ActionCheckoutRejected,
		ActionGarageFull,
	)
}

// allActions returns all known audit actions.
func allActions() []string {
	return []string{
		ActionCarCheckedIn,
		ActionCarCheckedOut,
		ActionCheckinRejected,
		ActionCheckoutRejected,
		ActionGarageStarted,
		ActionGarageStopped,
		ActionGarageFull,
	}
}
