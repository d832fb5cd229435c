package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pdrill/internal"
)

var (
	waitSyncMaxAttempts int
	waitSyncDelay       time.Duration
)

var waitSyncCmd = &cobra.Command{
	Use:   "wait-sync DATASET_ID",
	Short: "Poll a dataset until all data sources have synced",
	Long: `Poll dataset status until every data source reports synced.

The loop fails immediately if any source reports invalid, and fails
with a timeout once the attempt budget is exhausted while sources are
still syncing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		status, err := client.WaitForSync(context.Background(), args[0], internal.SyncOptions{
			MaxAttempts: waitSyncMaxAttempts,
			Delay:       waitSyncDelay,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(status); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("All %d data source(s) synced", status.SynchedCount)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(waitSyncCmd)

	waitSyncCmd.Flags().IntVar(&waitSyncMaxAttempts, "max-attempts", internal.DefaultSyncAttempts, "Poll attempts before giving up")
	waitSyncCmd.Flags().DurationVar(&waitSyncDelay, "delay", internal.DefaultSyncDelay, "Delay between poll attempts")
}
