package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/avlone/tracknote/internal/clock"
	"github.com/avlone/tracknote/internal/config"
	"github.com/avlone/tracknote/internal/store"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Exit       func(code int)
	Clock      clock.Clock
	NewStore   func(root string) (store.Store, error)
	ConfigPath func() (string, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		Clock:      clock.Real(),
		NewStore:   newDirStore,
		ConfigPath: config.GetConfigPath,
	}
}

// newDirStore opens a filesystem document store rooted at dir.
func newDirStore(dir string) (store.Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return store.NewDirStore(dir), nil
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// newLogger returns the model-layer logger for this invocation.
// Decode failures, skipped blocks, and sweep details land on stderr
// without disturbing command output on stdout.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
