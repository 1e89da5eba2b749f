//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package fork

import (
	"golang.org/x/sys/unix"
)

// forkProcess duplicates the process via the fork syscall. On the BSDs the
// raw syscall returns the pid in r0 and a parent/child flag in r1; the libc
// stub normally folds those into the single fork() return value, so the same
// folding happens here: the child sees 0, the parent sees the child's pid.
func forkProcess() (int, unix.Errno) {
	pid, inChild, errno := unix.RawSyscall(unix.SYS_FORK, 0, 0, 0)
	if errno != 0 {
		return -1, errno
	}
	if inChild == 1 {
		return 0, 0
	}
	return int(pid), 0
}

// dupTo duplicates oldfd onto newfd.
func dupTo(oldfd, newfd int) error {
	return unix.Dup2(oldfd, newfd)
}
