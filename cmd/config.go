package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avlone/tracknote/internal/config"
)

// configCmd represents the config parent command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tracknote configuration",
	Long: `Manage the tracknote configuration file.

Subcommands:
  init    Create a sample config file
  show    Show the effective configuration
  path    Print the config file location

Examples:
  tracknote config init
  tracknote config show
  tracknote config path`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Long:  `Write a documented sample configuration file, unless one already exists.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration in effect, defaults filled in.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfigPath()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if _, err := os.Stat(path); err == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists: %s\n", path)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Edit it directly, or remove it and run 'tracknote config init' again")
		deps.Exit(1)
		return
	}
	if err := os.WriteFile(path, []byte(config.GenerateSample()), 0644); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
}

func showConfig() {
	cfg := loadConfig()
	_, _ = fmt.Fprintf(deps.Stdout, "display_time_format = %q\n", cfg.DisplayTimeFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "edit_time_format    = %q\n", cfg.EditTimeFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "csv_delimiter       = %q\n", cfg.CSVDelimiter)
	_, _ = fmt.Fprintf(deps.Stdout, "reverse_order       = %t\n", cfg.ReverseOrder)
	_, _ = fmt.Fprintf(deps.Stdout, "auto_stop           = %t\n", cfg.AutoStop)
	_, _ = fmt.Fprintf(deps.Stdout, "theme               = %q\n", cfg.Theme)
}

func showConfigPath() {
	path, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, path)
}
