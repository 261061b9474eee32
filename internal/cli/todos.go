package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/internal/view"
)

func newAddCmd(e *env) *cobra.Command {
	var (
		description string
		priority    string
		due         string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := model.TodoInput{
				Title:       strings.Join(args, " "),
				Description: description,
			}

			if priority != "" {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			if due != "" {
				d, err := parseDue(due, e.now())
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			if category != "" {
				c, err := e.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				in.CategoryID = c.ID
			}

			todo, err := e.svc.CreateTodo(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(todo.ID), quote(todo.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high (default medium)")
	cmd.Flags().StringVar(&due, "due", "", "due date: YYYY-MM-DD, today or tomorrow")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	var (
		status   string
		category string
		today    bool
		week     bool
		date     string
		month    string
		output   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := checkFormat(output); err != nil {
				return err
			}

			st, err := view.ParseStatus(status)
			if err != nil {
				return err
			}
			q := view.Query{Status: st}

			if category != "" {
				c, err := e.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				q.CategoryID = c.ID
			}

			now := e.now()
			switch {
			case today:
				q.Scope, q.Day = view.ScopeDay, now
			case week:
				q.Scope, q.Day = view.ScopeWeek, now
			case date != "":
				d, err := parseDue(date, now)
				if err != nil {
					return err
				}
				q.Scope, q.Day = view.ScopeDay, d
			case month != "":
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				q.Scope, q.Day = view.ScopeMonth, m
			}

			todos, err := e.svc.Query(ctx, q)
			if err != nil {
				return err
			}
			cats, err := e.svc.ListCategories(ctx)
			if err != nil {
				return err
			}
			return writeTodos(cmd.OutOrStdout(), output, todos, cats, now, view.EmptyMessage(st))
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "all, active or completed")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	cmd.Flags().BoolVar(&today, "today", false, "only todos due today")
	cmd.Flags().BoolVar(&week, "week", false, "only todos due this week (Sunday to Saturday)")
	cmd.Flags().StringVar(&date, "date", "", "only todos due on YYYY-MM-DD")
	cmd.Flags().StringVar(&month, "month", "", "only todos due in YYYY-MM")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "table, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("today", "week", "date", "month")
	return cmd
}

func newDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo between open and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := e.resolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			todo, err := e.svc.ToggleTodo(ctx, id)
			if err != nil {
				return err
			}
			verb := "Reopened"
			if todo.Completed {
				verb = "Completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, shortID(todo.ID), quote(todo.Title))
			return nil
		},
	}
}

func newEditCmd(e *env) *cobra.Command {
	var (
		title         string
		description   string
		priority      string
		due           string
		clearDue      bool
		category      string
		clearCategory bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a todo",
		Long: `Change fields of a todo. Only the flags given are applied; use
--clear-due and --clear-category to remove those values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			id, err := e.resolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}

			var patch model.TodoPatch
			if flags.Changed("title") {
				patch.Title = model.Set(title)
			}
			if flags.Changed("description") {
				if description == "" {
					patch.Description = model.Clear[string]()
				} else {
					patch.Description = model.Set(description)
				}
			}
			if flags.Changed("priority") {
				p, err := parsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = model.Set(p)
			}
			switch {
			case clearDue:
				patch.DueDate = model.Clear[time.Time]()
			case flags.Changed("due"):
				d, err := parseDue(due, e.now())
				if err != nil {
					return err
				}
				patch.DueDate = model.Set(d)
			}
			switch {
			case clearCategory:
				patch.CategoryID = model.Clear[string]()
			case flags.Changed("category"):
				c, err := e.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				patch.CategoryID = model.Set(c.ID)
			}

			todo, err := e.svc.UpdateTodo(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(todo.ID), quote(todo.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date: YYYY-MM-DD, today or tomorrow")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or id")
	cmd.Flags().BoolVar(&clearCategory, "clear-category", false, "remove the category")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	cmd.MarkFlagsMutuallyExclusive("category", "clear-category")
	return cmd
}

func newRmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := e.resolveTodoID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := e.svc.DeleteTodo(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
			return nil
		},
	}
}
