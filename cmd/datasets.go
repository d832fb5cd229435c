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
	// Styles shared by the table-rendering commands
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var (
	listDatasetsSearch     string
	listDatasetsPageNumber int
	listDatasetsPageSize   int
	createDatasetDesc      string
)

var listDatasetsCmd = &cobra.Command{
	Use:   "list-datasets",
	Short: "List datasets in the team space",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		page, err := client.ListDatasets(context.Background(), internal.ListOptions{
			PageNumber: listDatasetsPageNumber,
			PageSize:   listDatasetsPageSize,
			Search:     listDatasetsSearch,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(page); done || err != nil {
			return err
		}
		displayDatasets(page)
		return nil
	},
}

var createDatasetCmd = &cobra.Command{
	Use:   "create-dataset NAME",
	Short: "Create a new dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ds, err := client.CreateDataset(context.Background(), args[0], createDatasetDesc)
		if err != nil {
			return err
		}
		recordHistory(internal.HistoryDataset, ds.ID, ds.Name)

		if done, err := printStructured(ds); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render("Dataset created"))
		fmt.Printf("  %s %s\n", titleStyle.Render(ds.Name), idStyle.Render(ds.ID))
		return nil
	},
}

var datasetOverviewCmd = &cobra.Command{
	Use:   "dataset-overview DATASET_ID",
	Short: "Show the server-generated overview of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		ov, err := client.DatasetOverview(context.Background(), args[0])
		if err != nil {
			return err
		}

		if done, err := printStructured(ov); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(ov.Name) + " " + idStyle.Render(ov.ID))
		if ov.Description != "" {
			fmt.Println(ov.Description)
		}
		if ov.Summary != "" {
			fmt.Println()
			fmt.Println(ov.Summary)
		}
		if len(ov.Keywords) > 0 {
			fmt.Println()
			fmt.Println(dimStyle.Render("Keywords: " + strings.Join(ov.Keywords, ", ")))
		}
		if len(ov.ExplorationQuestions) > 0 {
			fmt.Println()
			fmt.Println(titleStyle.Render("Try asking:"))
			for _, q := range ov.ExplorationQuestions {
				fmt.Printf("  • %s\n", q)
			}
		}
		return nil
	},
}

var datasetStatusCmd = &cobra.Command{
	Use:   "dataset-status DATASET_ID",
	Short: "Show data-source sync counts for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		status, err := client.DatasetStatus(context.Background(), args[0])
		if err != nil {
			return err
		}

		if done, err := printStructured(status); done || err != nil {
			return err
		}
		fmt.Printf("%s synced, %s syncing, %s invalid\n",
			countStyle.Render(fmt.Sprintf("%d", status.SynchedCount)),
			dimStyle.Render(fmt.Sprintf("%d", status.SynchingCount)),
			dimStyle.Render(fmt.Sprintf("%d", status.InvalidCount)))
		return nil
	},
}

var deleteDatasetCmd = &cobra.Command{
	Use:   "delete-dataset DATASET_ID",
	Short: "Delete a dataset and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.DeleteDataset(context.Background(), args[0]); err != nil {
			return err
		}
		forgetHistory(args[0])
		fmt.Println(headerStyle.Render("Dataset deleted") + " " + idStyle.Render(args[0]))
		return nil
	},
}

func displayDatasets(page *internal.DatasetPage) {
	if len(page.Records) == 0 {
		fmt.Println(headerStyle.Render("No datasets found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d dataset(s)", page.TotalItems))
	fmt.Println(header)
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Description")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, ds := range page.Records {
		desc := ds.Description
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if desc == "" {
			desc = dimStyle.Render("—")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", idStyle.Render(ds.ID), ds.Name, desc)
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listDatasetsCmd)
	rootCmd.AddCommand(createDatasetCmd)
	rootCmd.AddCommand(datasetOverviewCmd)
	rootCmd.AddCommand(datasetStatusCmd)
	rootCmd.AddCommand(deleteDatasetCmd)

	listDatasetsCmd.Flags().StringVar(&listDatasetsSearch, "search", "", "Filter datasets by name")
	listDatasetsCmd.Flags().IntVar(&listDatasetsPageNumber, "page-number", 1, "Page number")
	listDatasetsCmd.Flags().IntVar(&listDatasetsPageSize, "page-size", 10, "Page size")
	createDatasetCmd.Flags().StringVar(&createDatasetDesc, "description", "", "Dataset description")
}
