package llm

import "errors"

var (
	// ErrUnavailable means the provider kept failing transiently until the
	// retry budget ran out. The caller may retry the whole request later.
	ErrUnavailable = errors.New("model provider unavailable")
	// ErrAccessDenied means the provider rejected our credentials or
	// permissions. Retrying cannot help; this is a deployment problem.
	ErrAccessDenied = errors.New("model provider access denied")
)

// classified carries the retry classification a provider caller attached to
// an error. Unclassified errors pass through the client untouched.
type classified struct {
	err       error
	transient bool
	denied    bool
}

func (c *classified) Error() string { return c.err.Error() }
func (c *classified) Unwrap() error { return c.err }

// Transient marks a provider error as retryable (throttling, timeouts,
// server-side failures).
func Transient(err error) error {
	return &classified{err: err, transient: true}
}

// Denied marks a provider error as an authentication or permission failure.
func Denied(err error) error {
	return &classified{err: err, denied: true}
}

func isTransient(err error) bool {
	var c *classified
	return errors.As(err, &c) && c.transient
}

func isDenied(err error) bool {
	var c *classified
	return errors.As(err, &c) && c.denied
}
