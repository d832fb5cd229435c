package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pdrill/internal"
)

var (
	cleanupSessionID string
	cleanupDatasetID string
	cleanupLast      bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete a session and/or dataset after an analysis run",
	Long: `Delete a session and/or dataset, ignoring failures so both
deletions are always attempted.

Pass ids explicitly with --session-id and --dataset-id, or use --last
to delete the most recently created session and dataset recorded in
the local history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, datasetID := cleanupSessionID, cleanupDatasetID

		if cleanupLast {
			if sessionID != "" || datasetID != "" {
				return fmt.Errorf("--last cannot be combined with explicit ids")
			}
			h := openHistory()
			if h == nil {
				return fmt.Errorf("local history is unavailable; pass --session-id/--dataset-id instead")
			}
			defer h.Close()

			if entry, err := h.LastByKind(internal.HistorySession); err != nil {
				return err
			} else if entry != nil {
				sessionID = entry.RemoteID
			}
			if entry, err := h.LastByKind(internal.HistoryDataset); err != nil {
				return err
			} else if entry != nil {
				datasetID = entry.RemoteID
			}
		}

		if sessionID == "" && datasetID == "" {
			return fmt.Errorf("nothing to clean up: provide --session-id, --dataset-id, or --last")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		client.Cleanup(context.Background(), sessionID, datasetID)
		if sessionID != "" {
			forgetHistory(sessionID)
		}
		if datasetID != "" {
			forgetHistory(datasetID)
		}
		fmt.Println(headerStyle.Render("Cleanup finished"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().StringVar(&cleanupSessionID, "session-id", "", "Session to delete")
	cleanupCmd.Flags().StringVar(&cleanupDatasetID, "dataset-id", "", "Dataset to delete")
	cleanupCmd.Flags().BoolVar(&cleanupLast, "last", false, "Delete the most recently created session and dataset")
}
