package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/todocal/internal/calendar"
	"github.com/nhle/todocal/internal/model"
	calview "github.com/nhle/todocal/internal/ui/calendar"
	"github.com/nhle/todocal/internal/view"
)

func newCalendarCmd(e *env) *cobra.Command {
	var (
		month    string
		status   string
		category string
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month grid with the days that have todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := e.now()

			st := view.NewState(now)
			if month != "" {
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				st.Month = m
			}
			s, err := view.ParseStatus(status)
			if err != nil {
				return err
			}
			st.SetStatus(s)

			cats, err := e.svc.ListCategories(ctx)
			if err != nil {
				return err
			}
			if category != "" {
				c, err := e.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				st.SetCategory(c.ID)
			}

			data, err := e.svc.LoadMonth(ctx, st, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, calview.Render(st.Month, data.Grid, now, nil))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatAgenda(data.Todos, cats))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show as YYYY-MM (default: current)")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "all, active or completed")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	return cmd
}

// formatAgenda lists todos under their due day, earliest day first.
func formatAgenda(todos []model.Todo, cats []model.Category) string {
	byDay := model.GroupByDay(todos)
	if len(byDay) == 0 {
		return "No todos this month.\n"
	}

	days := make([]string, 0, len(byDay))
	for k := range byDay {
		days = append(days, k)
	}
	sort.Strings(days)

	var b strings.Builder
	for _, k := range days {
		d, err := calendar.ParseDayKey(k)
		if err != nil {
			continue
		}
		b.WriteString(calendar.FormatDate(d))
		b.WriteString("\n")
		for _, t := range byDay[k] {
			mark := "○"
			if t.Completed {
				mark = "✓"
			}
			line := fmt.Sprintf("  %s %s %s", mark, shortID(t.ID), t.Title)
			if c, ok := model.FindCategory(cats, t.CategoryID); ok {
				line += " [" + c.Name + "]"
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
