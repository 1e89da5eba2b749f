package fork

import (
	"golang.org/x/sys/unix"
)

// Setsid makes the calling process the leader of a new session and of a new
// process group, detaching it from any controlling terminal. On success it
// returns the id of the new session, which equals the caller's own pid.
//
// It fails with EPERM when the caller is already a process-group leader; the
// usual fix is to Fork first and call Setsid from the child, which is exactly
// what Daemon does.
func Setsid() (int, error) {
	sid, err := unix.Setsid()
	if err != nil {
		return 0, wrapErrno("setsid", err)
	}
	return sid, nil
}

// Getpgrp returns the calling process's process-group id. The call cannot
// fail on conforming systems, but it keeps the fallible shape of the other
// primitives so callers handle all of them uniformly.
func Getpgrp() (int, error) {
	return unix.Getpgrp(), nil
}
