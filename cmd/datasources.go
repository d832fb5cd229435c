package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pdrill/internal"
)

var (
	listDataSourcesStatus     string
	listDataSourcesPageNumber int
	listDataSourcesPageSize   int
	createDataSourceName      string
	createDataSourceURL       string
	createDataSourceKey       string
)

var listDataSourcesCmd = &cobra.Command{
	Use:   "list-data-sources DATASET_ID",
	Short: "List data sources in a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		page, err := client.ListDataSources(context.Background(), args[0], internal.DataSourceListOptions{
			PageNumber: listDataSourcesPageNumber,
			PageSize:   listDataSourcesPageSize,
			Status:     listDataSourcesStatus,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(page); done || err != nil {
			return err
		}
		displayDataSources(page)
		return nil
	},
}

var createDataSourceCmd = &cobra.Command{
	Use:   "create-data-source DATASET_ID",
	Short: "Register a file URL or uploaded file as a data source",
	Long: `Register a data source in a dataset.

Provide exactly one origin: --url for a public file URL, or
--file-object-key for a key returned by a completed upload.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (createDataSourceURL == "") == (createDataSourceKey == "") {
			return fmt.Errorf("provide exactly one of --url or --file-object-key")
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		name := createDataSourceName
		if name == "" {
			name = createDataSourceURL
		}
		ds, err := client.CreateDataSource(context.Background(), args[0], name, internal.DataSourceOrigin{
			URL:           createDataSourceURL,
			FileObjectKey: createDataSourceKey,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(ds); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render("Data source created"))
		fmt.Printf("  %s %s\n", titleStyle.Render(ds.Name), idStyle.Render(ds.ID))
		return nil
	},
}

func displayDataSources(page *internal.DataSourcePage) {
	if len(page.Records) == 0 {
		fmt.Println(headerStyle.Render("No data sources found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d data source(s)", page.TotalItems)))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Status")+"\t"+titleStyle.Render("Size")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, ds := range page.Records {
		status := ds.Status
		switch ds.Status {
		case internal.DataSourceSynched:
			status = countStyle.Render(ds.Status)
		case internal.DataSourceInvalid:
			status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(ds.Status)
		default:
			status = dimStyle.Render(ds.Status)
		}

		size := dimStyle.Render("—")
		if ds.Size > 0 {
			size = humanize.Bytes(uint64(ds.Size))
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", idStyle.Render(ds.ID), ds.Name, status, size)
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listDataSourcesCmd)
	rootCmd.AddCommand(createDataSourceCmd)

	listDataSourcesCmd.Flags().StringVar(&listDataSourcesStatus, "status", "", "Filter by status (synching, synched, invalid)")
	listDataSourcesCmd.Flags().IntVar(&listDataSourcesPageNumber, "page-number", 1, "Page number")
	listDataSourcesCmd.Flags().IntVar(&listDataSourcesPageSize, "page-size", 10, "Page size")
	createDataSourceCmd.Flags().StringVar(&createDataSourceName, "name", "", "Data source name (defaults to the URL)")
	createDataSourceCmd.Flags().StringVar(&createDataSourceURL, "url", "", "Public file URL")
	createDataSourceCmd.Flags().StringVar(&createDataSourceKey, "file-object-key", "", "File object key from a completed upload")
}
