package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/todocal/internal/model"
)

func newCategoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	cmd.AddCommand(newCategoryAddCmd(e))
	cmd.AddCommand(newCategoryListCmd(e))
	cmd.AddCommand(newCategoryRmCmd(e))
	return cmd
}

func newCategoryAddCmd(e *env) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.svc.CreateCategory(cmd.Context(), model.CategoryInput{
				Name:  strings.Join(args, " "),
				Color: color,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s %s (%s)\n", shortID(c.ID), quote(c.Name), c.Color)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color like #22c55e (default "+model.DefaultCategoryColor+")")
	return cmd
}

func newCategoryListCmd(e *env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			cats, err := e.svc.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return writeCategories(cmd.OutOrStdout(), output, cats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "table, json or yaml")
	return cmd
}

func newCategoryRmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name|id>",
		Short: "Delete a category; its todos keep their other fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := e.resolveCategory(ctx, args[0])
			if err != nil {
				return err
			}
			if err := e.svc.DeleteCategory(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", quote(c.Name))
			return nil
		},
	}
}
