// admin.go - command line administration of stored messages and visits
package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MontecalvoAm/portfolio/internal/contact"
	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/db"
	"github.com/MontecalvoAm/portfolio/internal/tracking"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func (o *rootOptions) openDB() (*sql.DB, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return db.OpenDB(cfg.Storage.DBPath)
}

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect page content",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check a content file, or the built-in content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			c, err := content.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d skills, %d education, %d certificates, %d services, %d projects\n",
				len(c.Skills), len(c.Education), len(c.Certificates), len(c.Services), len(c.Projects))
			return nil
		},
	})
	return cmd
}

func newMessagesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Manage contact form submissions",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show the newest submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := opts.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			msgs, err := contact.NewSQLiteRepo(database).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			t := newTable("ID", "Received", "Name", "Email", "Status", "Message")
			for _, m := range msgs {
				t.Row(m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, string(m.Status), m.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "number of messages")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := opts.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := contact.NewSQLiteRepo(database).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}

func newVisitorsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Visitor statistics",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Summarise recorded visits",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := opts.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			tracker, err := tracking.New(database, nil)
			if err != nil {
				return err
			}
			stats, err := tracker.Stats(cmd.Context())
			if err != nil {
				return err
			}
			summary := newTable("Total", "Unique", "Today", "This week").Row(
				strconv.FormatInt(stats.TotalVisitors, 10),
				strconv.FormatInt(stats.UniqueVisitors, 10),
				strconv.FormatInt(stats.VisitorsToday, 10),
				strconv.FormatInt(stats.VisitorsThisWeek, 10),
			)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, summary.Render())
			if len(stats.TopPaths) > 0 {
				top := newTable("Path", "Views")
				for _, c := range stats.TopPaths {
					top.Row(c.Path, strconv.FormatInt(c.Views, 10))
				}
				fmt.Fprintln(out, top.Render())
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete visits older than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := opts.openDB()
			if err != nil {
				return err
			}
			defer database.Close()

			tracker, err := tracking.New(database, nil)
			if err != nil {
				return err
			}
			n, err := tracker.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d visitor records\n", n)
			return nil
		},
	})
	return cmd
}
