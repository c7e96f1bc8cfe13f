package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/autostop"
)

var watchIntervalFlag time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically sweep the store for running entries",
	Long: `Run the auto-stop sweep on a timer until interrupted.

However short the interval, the sweep itself fires at most once per
wall-clock minute. Stop with Ctrl-C.

Examples:
  tracknote watch
  tracknote watch --interval 30s`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		watchStore()
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchIntervalFlag, "interval", time.Minute, "how often to check")
	rootCmd.AddCommand(watchCmd)
}

// watchStore sweeps on a ticker until interrupted.
func watchStore() {
	st, ok := openStore()
	if !ok {
		return
	}
	log := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(deps.Stdout, "Watching store (interval %s), Ctrl-C to stop\n", watchIntervalFlag)

	ticker := time.NewTicker(watchIntervalFlag)
	defer ticker.Stop()

	var gate autostop.Gate
	for {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(deps.Stdout, "Stopped watching")
			return
		case <-ticker.C:
			now := deps.Clock.Now()
			if !gate.Allow(now) {
				continue
			}
			modified, err := autostop.Sweep(st, now, log)
			if err != nil {
				_, _ = fmt.Fprintf(deps.Stderr, "Warning: Sweep failed: %v\n", err)
				continue
			}
			if modified > 0 {
				_, _ = fmt.Fprintf(deps.Stdout, "%s stopped running entries in %d document(s)\n",
					now.Format("15:04:05"), modified)
			}
		}
	}
}
