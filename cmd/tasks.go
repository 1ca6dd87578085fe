package cmd

import (
	"strings"

	"github.com/ismaelescalante7/challenge-leverbox/filters"
	"github.com/ismaelescalante7/challenge-leverbox/models"
	"github.com/ismaelescalante7/challenge-leverbox/resources"
	"github.com/ismaelescalante7/challenge-leverbox/services"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	listStatus   string
	listPriority string
	listTags     []string
	listOverdue  bool
	listSearch   string
	listSortBy   string
	listSortDir  string
	listPage     int
	listPerPage  int
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		raw := map[string]any{
			"status":         listStatus,
			"priority_id":    listPriority,
			"tag_ids":        listTags,
			"overdue":        listOverdue,
			"search":         listSearch,
			"sort_by":        listSortBy,
			"sort_direction": listSortDir,
			"page":           listPage,
			"per_page":       listPerPage,
		}
		today := models.Today()
		f := filters.Parse(raw, today)

		page, err := services.NewTaskService(db, logger).ListTasks(cmd.Context(), f, filters.ParsePagination(raw))
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleDouble)
		t.Style().Options.SeparateRows = false

		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Title")),
			text.FgGreen.Sprintf("Status"),
			text.FgGreen.Sprintf("Priority"),
			text.FgGreen.Sprintf("Tags"),
			text.FgGreen.Sprintf("Due"),
			text.FgGreen.Sprintf("Urgency"),
		})

		for _, task := range page.Items {
			res := resources.NewTaskResource(task, today)

			due := "-"
			if res.Dates.FormattedDueDate != nil {
				due = *res.Dates.FormattedDueDate
				if res.Dates.IsOverdue {
					due = text.FgHiRed.Sprintf("%s", due)
				}
			}

			priority := "-"
			if res.Priority != nil {
				priority = res.Priority.Label
			}

			tagLabels := make([]string, 0, len(res.Tags))
			for _, tag := range res.Tags {
				tagLabels = append(tagLabels, string(tag.Name))
			}

			t.AppendRow(table.Row{
				res.ID,
				res.Title,
				statusColor(task.Status).Sprintf("%s", res.Status.Label),
				priority,
				strings.Join(tagLabels, ", "),
				due,
				urgencyColor(res.Meta.UrgencyLevel).Sprintf("%s", res.Meta.UrgencyLevel),
			})
		}

		t.AppendFooter(table.Row{"", "", "", "", "", "page", pageSummary(page.Page, page.LastPage(), page.Total)})
		t.Render()
		return nil
	},
}

func statusColor(s models.TaskStatus) text.Color {
	switch s {
	case models.StatusInProgress:
		return text.FgHiYellow
	case models.StatusCompleted:
		return text.FgHiGreen
	}
	return text.FgHiBlack
}

func urgencyColor(level string) text.Color {
	switch level {
	case resources.UrgencyCritical:
		return text.FgHiRed
	case resources.UrgencyHigh:
		return text.FgRed
	case resources.UrgencyMedium:
		return text.FgHiYellow
	}
	return text.FgHiGreen
}

func pageSummary(page, last int, total int64) string {
	return text.Faint.Sprintf("%d/%d (%d)", page, last, total)
}

func init() {
	tasksCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, in_progress, completed)")
	tasksCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority id")
	tasksCmd.Flags().StringSliceVarP(&listTags, "tag", "t", []string{}, "Filter by tag ids")
	tasksCmd.Flags().BoolVar(&listOverdue, "overdue", false, "Only overdue tasks")
	tasksCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Search by title or description")
	tasksCmd.Flags().StringVar(&listSortBy, "sort", "", "Sort column")
	tasksCmd.Flags().StringVar(&listSortDir, "dir", "", "Sort direction (asc, desc)")
	tasksCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	tasksCmd.Flags().IntVar(&listPerPage, "limit", 20, "Tasks per page")
	rootCmd.AddCommand(tasksCmd)
}
