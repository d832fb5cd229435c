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
	listSessionsSearch     string
	listSessionsPageNumber int
	listSessionsPageSize   int
	createSessionLanguage  string
	createSessionJobMode   string
	createSessionHistory   int
)

var listSessionsCmd = &cobra.Command{
	Use:   "list-sessions",
	Short: "List sessions in the team space",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		page, err := client.ListSessions(context.Background(), internal.ListOptions{
			PageNumber: listSessionsPageNumber,
			PageSize:   listSessionsPageSize,
			Search:     listSessionsSearch,
		})
		if err != nil {
			return err
		}

		if done, err := printStructured(page); done || err != nil {
			return err
		}
		displaySessions(page)
		return nil
	},
}

var createSessionCmd = &cobra.Command{
	Use:   "create-session NAME",
	Short: "Create a new analysis session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		s, err := client.CreateSession(context.Background(), internal.SessionParams{
			Name:                    args[0],
			OutputLanguage:          createSessionLanguage,
			JobMode:                 createSessionJobMode,
			MaxContextualJobHistory: createSessionHistory,
		})
		if err != nil {
			return err
		}
		recordHistory(internal.HistorySession, s.ID, s.Name)

		if done, err := printStructured(s); done || err != nil {
			return err
		}
		fmt.Println(headerStyle.Render("Session created"))
		fmt.Printf("  %s %s\n", titleStyle.Render(s.Name), idStyle.Render(s.ID))
		return nil
	},
}

var deleteSessionCmd = &cobra.Command{
	Use:   "delete-session SESSION_ID",
	Short: "Delete a session and its job history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.DeleteSession(context.Background(), args[0]); err != nil {
			return err
		}
		forgetHistory(args[0])
		fmt.Println(headerStyle.Render("Session deleted") + " " + idStyle.Render(args[0]))
		return nil
	},
}

func displaySessions(page *internal.SessionPage) {
	if len(page.Records) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", page.TotalItems)))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Language")+"\t"+titleStyle.Render("Mode")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, s := range page.Records {
		lang := s.OutputLanguage
		if lang == "" {
			lang = dimStyle.Render("AUTO")
		}
		mode := s.JobMode
		if mode == "" {
			mode = dimStyle.Render("AUTO")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", idStyle.Render(s.ID), s.Name, lang, mode)
	}

	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(listSessionsCmd)
	rootCmd.AddCommand(createSessionCmd)
	rootCmd.AddCommand(deleteSessionCmd)

	listSessionsCmd.Flags().StringVar(&listSessionsSearch, "search", "", "Filter sessions by name")
	listSessionsCmd.Flags().IntVar(&listSessionsPageNumber, "page-number", 1, "Page number")
	listSessionsCmd.Flags().IntVar(&listSessionsPageSize, "page-size", 10, "Page size")
	createSessionCmd.Flags().StringVar(&createSessionLanguage, "output-language", "AUTO", "Output language for responses")
	createSessionCmd.Flags().StringVar(&createSessionJobMode, "job-mode", "AUTO", "Job mode")
	createSessionCmd.Flags().IntVar(&createSessionHistory, "max-contextual-job-history", 10, "Jobs of conversational context to keep")
}
