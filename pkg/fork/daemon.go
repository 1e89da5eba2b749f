package fork

import (
	"os"

	"golang.org/x/sys/unix"
)

// Chdir changes the working directory to the filesystem root, so a daemon
// does not keep whatever directory it was launched from busy (and with it,
// possibly a mounted filesystem).
func Chdir() error {
	return wrapErrno("chdir", unix.Chdir("/"))
}

// Daemon detaches the calling program from its controlling terminal and turns
// it into a background daemon using the classic double fork:
//
//  1. fork; the original parent exits
//  2. the child calls Setsid and becomes a session leader with no terminal
//  3. unless nochdir, the working directory is changed to /
//  4. fork again; the session leader exits
//  5. unless noclose, stdin, stdout and stderr are redirected to the null
//     device (redirected, not closed — see RedirectStdio)
//
// The second fork matters: only a process that is not a session leader is
// guaranteed never to acquire a controlling terminal, whatever it opens
// later.
//
// Both intermediate processes exit inside this call, so Daemon returns at
// most once, in the surviving daemon process, and the Result is always the
// child variant. A failure in steps 2-5 aborts the sequence and is returned
// to whichever process observed it; earlier steps that already succeeded
// (session, directory) are not rolled back.
func Daemon(nochdir, noclose bool) (Result, error) {
	res, err := Fork()
	if err != nil {
		return Result{}, err
	}
	if res.IsParent() {
		// The first parent leaves so the child is free to start a session.
		os.Exit(0)
	}

	if _, err := Setsid(); err != nil {
		return Result{}, err
	}
	if !nochdir {
		if err := Chdir(); err != nil {
			return Result{}, err
		}
	}

	res, err = Fork()
	if err != nil {
		return Result{}, err
	}
	if res.IsParent() {
		// The session leader leaves; the grandchild that survives can never
		// reacquire a controlling terminal.
		os.Exit(0)
	}

	if !noclose {
		if err := RedirectStdio(); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
