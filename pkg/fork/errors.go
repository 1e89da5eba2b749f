package fork

import (
	"golang.org/x/sys/unix"
)

// Error is the failure result of a single process-control operation. It keeps
// the operation name and the raw OS error code; the code is exposed through
// Unwrap so callers can match it programmatically:
//
//	if errors.Is(err, unix.ECHILD) { ... }
type Error struct {
	// Op is the primitive that failed: "fork", "setsid", "waitpid", ...
	Op string

	// Errno is the error code reported by the operating system.
	Errno unix.Errno
}

// Error returns the operation name together with the OS's own description of
// the failure, e.g. "setsid: operation not permitted".
func (e *Error) Error() string {
	return e.Op + ": " + e.Errno.Error()
}

// Unwrap exposes the underlying errno for errors.Is / errors.As matching.
func (e *Error) Unwrap() error {
	return e.Errno
}

// wrapErrno converts an error returned by the golang.org/x/sys/unix wrappers
// into an *Error for the given operation. A nil error stays nil.
func wrapErrno(op string, err error) error {
	if err == nil {
		return nil
	}
	errno, ok := err.(unix.Errno)
	if !ok {
		// The unix wrappers only ever return Errno values; anything else
		// would be a bug in our own call sites.
		errno = unix.EINVAL
	}
	return &Error{Op: op, Errno: errno}
}
