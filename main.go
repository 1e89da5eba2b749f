// Package main provides the entry point for the forkd application.
//
// forkd detaches configured jobs from the terminal and runs them as proper
// Unix daemons: new session, working directory moved to /, standard streams
// redirected to the null device.
package main

import (
	cmdroot "github.com/inercia/forkd/cmd"
	"github.com/inercia/forkd/pkg/common"
)

// main is the entry point of the application. It sets up the panic recovery system
// at the top level and executes the root command, which will process CLI flags and
// execute the selected subcommand.
func main() {
	// Setup global panic recovery that will catch any unhandled panics
	// and prevent the application from crashing uncleanly
	defer func() {
		common.RecoverPanic(nil, "")
	}()

	// Execute the root command
	cmdroot.Execute()
}
