// Package fork provides minimal primitives for detaching a process from its
// controlling terminal on Unix systems: fork, setsid, waitpid and stdio
// handling, plus Daemon, which combines them into the classic double-fork
// daemonization sequence.
//
// Every primitive wraps a single system call and converts its errno-style
// failure into a typed *Error that keeps the raw OS error code, so callers can
// match on the reason with errors.Is.
//
// Fork is unusual among these in that it returns twice, once in each process:
//
//	res, err := fork.Fork()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.IsParent() {
//	    fmt.Println("child pid:", res.ChildPid())
//	} else {
//	    // detached work happens here
//	}
//
// The two processes share nothing after the call but copy-on-write snapshots
// of the parent's state; they can only coordinate through the Result value
// and external channels such as files or pipes.
package fork
