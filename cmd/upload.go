package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pdrill/internal"
)

var (
	uploadWait        bool
	uploadMaxAttempts int
	uploadDelay       time.Duration
)

var uploadFileCmd = &cobra.Command{
	Use:   "upload-file DATASET_ID FILE",
	Short: "Upload a local file and register it as a data source",
	Long: `Upload a local file via multipart upload and register it as a data
source in the given dataset.

Accepted file types: csv, tsv, md, mdx, json, txt, pdf, pptx, docx,
xls, xlsx. With --wait the command then polls until every data source
in the dataset has synced.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx := context.Background()
		ds, err := client.UploadAndCreateDataSource(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		recordHistory(internal.HistoryUpload, ds.ID, filepath.Base(args[1]))

		if uploadWait {
			if _, err := client.WaitForSync(ctx, args[0], internal.SyncOptions{
				MaxAttempts: uploadMaxAttempts,
				Delay:       uploadDelay,
			}); err != nil {
				return err
			}
		}

		if done, err := printStructured(ds); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render("Data source created"))
		fmt.Printf("  %s %s\n", titleStyle.Render(ds.Name), idStyle.Render(ds.ID))
		if !uploadWait {
			fmt.Println(dimStyle.Render("Tip: run `pdrill wait-sync " + args[0] + "` before querying it"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadFileCmd)

	uploadFileCmd.Flags().BoolVar(&uploadWait, "wait", false, "Wait for the dataset to finish syncing")
	uploadFileCmd.Flags().IntVar(&uploadMaxAttempts, "max-attempts", internal.DefaultSyncAttempts, "Poll attempts when waiting")
	uploadFileCmd.Flags().DurationVar(&uploadDelay, "delay", internal.DefaultSyncDelay, "Delay between poll attempts when waiting")
}
