package fork

// Result reports which side of a fork the current process is on. Exactly one
// of the two processes produced by a successful Fork observes the parent
// variant and exactly one observes the child variant; the value is the only
// thing that distinguishes them at the call site.
type Result struct {
	pid int
}

// IsParent reports whether the current process is the original (parent) side
// of the fork.
func (r Result) IsParent() bool {
	return r.pid > 0
}

// IsChild reports whether the current process is the newly created child.
func (r Result) IsChild() bool {
	return r.pid == 0
}

// ChildPid returns the kernel-assigned pid of the new child. It is only
// meaningful on the parent side; in the child it returns 0 (a child that
// needs its own identity should ask the OS via os.Getpid).
func (r Result) ChildPid() int {
	return r.pid
}

// Fork duplicates the calling process. Both processes return from this call:
// the parent receives a Result carrying the child's pid, the child receives a
// Result with no payload. Neither side is terminated here; exiting the parent
// is the caller's decision (Daemon is the variant that exits the intermediate
// processes for you).
//
// The child starts with a copy-on-write image of the parent's memory,
// environment, working directory and descriptor table; mutations after the
// fork are never observed by the other process.
//
// Fork fails when the kernel cannot allocate a new process, typically because
// a process or resource limit was reached (EAGAIN/ENOMEM).
//
// The Go runtime is not fork-safe in general: only the calling thread exists
// in the child. Call this early in main, before goroutines are started, and
// keep the child to exec-or-exit style work.
func Fork() (Result, error) {
	pid, errno := forkProcess()
	if errno != 0 {
		return Result{}, &Error{Op: "fork", Errno: errno}
	}
	return Result{pid: pid}, nil
}
