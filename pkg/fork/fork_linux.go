//go:build linux

package fork

import (
	"golang.org/x/sys/unix"
)

// forkProcess duplicates the process. Linux dropped the fork syscall on newer
// architectures (arm64 and later), so this uses clone(2) with only SIGCHLD in
// the flags, which is exactly how the kernel implements fork itself. Returns
// the child pid in the parent and 0 in the child.
func forkProcess() (int, unix.Errno) {
	pid, _, errno := unix.RawSyscall(unix.SYS_CLONE, uintptr(unix.SIGCHLD), 0, 0)
	return int(pid), errno
}

// dupTo duplicates oldfd onto newfd. Linux has no dup2 on arm64 either, so
// dup3(2) is used; unlike dup2 it rejects oldfd == newfd, but callers only
// reach here when the two differ.
func dupTo(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}
