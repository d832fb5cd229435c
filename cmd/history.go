package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pdrill/internal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show resources this CLI created",
	Long: `Show the local record of datasets, sessions, and uploads this CLI
created. The record is a convenience for cleanup; the server remains
the source of truth, so deletions made elsewhere are not reflected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := openHistory()
		if h == nil {
			return fmt.Errorf("local history is unavailable")
		}
		defer h.Close()

		entries, err := h.Recent(historyLimit)
		if err != nil {
			return err
		}

		if done, err := printStructured(entries); done || err != nil {
			return err
		}
		displayHistory(entries)
		return nil
	},
}

func displayHistory(entries []internal.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Println(headerStyle.Render("No history yet"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d recorded resource(s)", len(entries))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Kind")+"\t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Created")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, e := range entries {
		created := e.CreatedAt.Local().Format(time.DateTime)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			countStyle.Render(e.Kind), idStyle.Render(e.RemoteID), e.Name, dimStyle.Render(created))
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
}
