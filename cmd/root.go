package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdrill/internal"
	"pdrill/internal/format"
)

var (
	verbose      bool
	outputFormat string
	historyPath  string
	noHistory    bool
	version      string = "dev"
	commit       string = "unknown"
	date         string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pdrill",
	Short: "CLI for the Powerdrill data analysis API",
	Long: `A CLI for the Powerdrill Data Analysis API v2.

Upload files into datasets, wait for them to index, and run
natural-language analysis jobs against them from the terminal.

Credentials come from the environment:
  POWERDRILL_USER_ID          your Powerdrill user ID
  POWERDRILL_PROJECT_API_KEY  your project API key

Quick Start:
  pdrill create-dataset sales               # Create a dataset
  pdrill upload-file <dataset-id> q1.csv --wait
  pdrill create-session exploration         # Create a session
  pdrill create-job <session-id> "count rows" --dataset-id <dataset-id>
  pdrill cleanup --last                     # Tear it all down again`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Machine-readable output format (json, yaml)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history-db", "", "Custom path for the local history database")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record created resources locally")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newClient loads credentials from the environment and builds the API
// client shared by every subcommand.
func newClient() (*internal.Client, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, err
	}
	return internal.NewClient(cfg), nil
}

// printStructured writes v with the requested --output formatter. It
// returns false when no machine format was requested, so the caller can
// fall back to human-readable rendering.
func printStructured(v any) (bool, error) {
	if outputFormat == "" {
		return false, nil
	}
	f, err := format.NewFormatter(outputFormat)
	if err != nil {
		return false, err
	}
	return true, f.Format(v, os.Stdout)
}

// openHistory opens the local history store, or returns nil when history
// is disabled or unavailable. History is a convenience; failures only warn.
func openHistory() *internal.History {
	if noHistory {
		return nil
	}
	path := historyPath
	if path == "" {
		var err error
		path, err = internal.DefaultHistoryPath()
		if err != nil {
			internal.LogWarn("History disabled: %v", err)
			return nil
		}
	}
	h, err := internal.OpenHistory(path)
	if err != nil {
		internal.LogWarn("History disabled: %v", err)
		return nil
	}
	return h
}

// recordHistory best-effort records a created resource.
func recordHistory(kind, remoteID, name string) {
	h := openHistory()
	if h == nil {
		return
	}
	defer h.Close()
	if err := h.Record(kind, remoteID, name); err != nil {
		internal.LogWarn("Could not record %s %s: %v", kind, remoteID, err)
	}
}

// forgetHistory best-effort drops a deleted resource from the history.
func forgetHistory(remoteID string) {
	h := openHistory()
	if h == nil {
		return
	}
	defer h.Close()
	if err := h.Forget(remoteID); err != nil {
		internal.LogWarn("Could not forget %s: %v", remoteID, err)
	}
}
