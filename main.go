package main

import (
	"os"

	"github.com/avlone/tracknote/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc allows tests to intercept the exit call.
var exitFunc = os.Exit

// run executes the CLI and returns the process exit code.
func run() int {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	exitFunc(run())
}
