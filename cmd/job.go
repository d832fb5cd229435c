package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pdrill/internal"
)

var (
	createJobDatasetID     string
	createJobDataSourceIDs []string
	createJobStream        bool
	createJobLanguage      string
	createJobMode          string
)

var createJobCmd = &cobra.Command{
	Use:   "create-job SESSION_ID QUESTION",
	Short: "Run a natural-language analysis job",
	Long: `Run one natural-language analysis query in a session.

With --stream the response is consumed incrementally as the server
produces it; otherwise the complete response arrives in one payload.
Either way the command prints the answer text followed by any
structured blocks (tables, images, charts).

Table and image URLs expire server-side after roughly 6 days and
cannot be refreshed; download anything you want to keep.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.CreateJob(context.Background(), internal.JobParams{
			SessionID:      args[0],
			Question:       args[1],
			DatasetID:      createJobDatasetID,
			DataSourceIDs:  createJobDataSourceIDs,
			Stream:         createJobStream,
			OutputLanguage: createJobLanguage,
			JobMode:        createJobMode,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(result); done || err != nil {
			return err
		}
		displayJobResult(result)
		return nil
	},
}

func displayJobResult(result *internal.JobResult) {
	if result.JobID != "" {
		fmt.Println(idStyle.Render("Job " + result.JobID))
	}
	if result.Text != "" {
		fmt.Println(result.Text)
	}

	var artifacts []internal.Block
	for _, b := range result.Blocks {
		if b.Type != internal.BlockMessage {
			artifacts = append(artifacts, b)
		}
	}
	if len(artifacts) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d structured block(s)", len(artifacts))))

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Type")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("URL")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	urls := false
	for _, b := range artifacts {
		name, url := dimStyle.Render("—"), dimStyle.Render("—")
		if ref, ok := b.FileRef(); ok {
			name, url = ref.Name, ref.URL
			urls = true
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", countStyle.Render(string(b.Type)), name, url)
	}
	_ = w.Flush()

	if urls {
		fmt.Println(dimStyle.Render("Note: table/image URLs expire after ~6 days and cannot be refreshed."))
	}
}

func init() {
	rootCmd.AddCommand(createJobCmd)

	createJobCmd.Flags().StringVar(&createJobDatasetID, "dataset-id", "", "Dataset to analyze")
	createJobCmd.Flags().StringSliceVar(&createJobDataSourceIDs, "datasource-id", nil, "Restrict the job to specific data sources (repeatable)")
	createJobCmd.Flags().BoolVar(&createJobStream, "stream", false, "Stream the response as it is produced")
	createJobCmd.Flags().StringVar(&createJobLanguage, "output-language", "AUTO", "Output language for the response")
	createJobCmd.Flags().StringVar(&createJobMode, "job-mode", "AUTO", "Job mode")
}
