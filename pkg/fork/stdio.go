package fork

import (
	"os"

	"golang.org/x/sys/unix"
)

// CloseStdio closes file descriptors 0, 1 and 2 outright.
//
// Closing the standard descriptors leaves their slots free, and the kernel
// always hands out the lowest free descriptor number: the next file the
// process opens can silently become fd 0, 1 or 2, so anything that still
// writes to "stdout" ends up corrupting that file. Prefer RedirectStdio,
// which keeps the slots occupied by the null device; CloseStdio is retained
// for callers that relied on the old behavior.
func CloseStdio() error {
	for fd := 0; fd <= 2; fd++ {
		if err := unix.Close(fd); err != nil {
			return wrapErrno("close", err)
		}
	}
	return nil
}

// RedirectStdio reopens file descriptors 0, 1 and 2 on the null device. The
// device is opened once, duplicated onto each standard slot, and the original
// descriptor is closed if it landed above slot 2. Because the slots stay
// occupied, files the process opens afterwards are guaranteed descriptor
// numbers >= 3 and stray writes to the standard streams go to the null
// device instead of user data.
//
// On partial failure the slots already redirected stay redirected; there is
// no rollback.
func RedirectStdio() error {
	nullfd, err := unix.Open(os.DevNull, unix.O_RDWR, 0)
	if err != nil {
		return wrapErrno("open "+os.DevNull, err)
	}
	for fd := 0; fd <= 2; fd++ {
		if fd == nullfd {
			// The null device itself landed on this slot, which means the
			// slot was free; it is already exactly what we want.
			continue
		}
		if err := dupTo(nullfd, fd); err != nil {
			return wrapErrno("dup2", err)
		}
	}
	if nullfd > 2 {
		if err := unix.Close(nullfd); err != nil {
			return wrapErrno("close", err)
		}
	}
	return nil
}
