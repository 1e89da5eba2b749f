package fork

import (
	"golang.org/x/sys/unix"
)

// Waitpid blocks the calling process until the child identified by pid
// changes state, normally by exiting, and discards the status. Besides
// synchronizing with the child this also reaps it, so no zombie entry is left
// in the process table.
//
// It fails with ECHILD when pid does not name a child of the calling process:
// an unrelated pid, a nonexistent one, or a child that was already reaped.
// There is no timeout; a caller needing a bounded wait has to arrange one
// externally.
func Waitpid(pid int) error {
	var status unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		return wrapErrno("waitpid", err)
	}
}
