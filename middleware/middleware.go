package middleware

import "time"

// DefaultStack returns the recommended production middleware stack:
// request ID injection followed by logging.
func DefaultStack(logger Logger) []Middleware {
	return []Middleware{
		RequestID(),
		Logging(logger),
	}
}

// DefaultStackWithTimeout returns the default stack with a timeout middleware.
func DefaultStackWithTimeout(logger Logger, timeout time.Duration) []Middleware {
	return []Middleware{
		RequestID(),
		Timeout(timeout),
		Logging(logger),
	}
}
