package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/joefazee/neo-admin/app/categories"
	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/joefazee/neo-admin/internal/deps"
	"github.com/joefazee/neo-admin/internal/formatter"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/joefazee/neo-admin/internal/validator"
	"github.com/joefazee/neo-admin/models"
	"github.com/spf13/cobra"
)

const (
	loadFailedMessage = "Failed to load categories"
	showFailedMessage = "Failed to load category"
)

// NewCategories groups the category management commands.
func NewCategories(params *cli.CmdParams) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage product categories",
		Long:    `List, search, create, edit and delete the product categories served by the admin API.`,
	}

	categoriesCmd.AddCommand(
		newCategoriesList(params),
		newCategoriesBrowse(params),
		newCategoriesShow(params),
		newCategoriesCreate(params),
		newCategoriesEdit(params),
		newCategoriesDelete(params),
	)

	return categoriesCmd
}

func newCategoriesList(params *cli.CmdParams) *cobra.Command {
	var (
		search string
		page   int
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  `Print one page of categories, optionally filtered by a case-insensitive search on name and details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, mod, err := mountCategories(cmd, params)
			if err != nil {
				return err
			}
			defer mod.View.Close()

			current := mod.View.Search(search)
			if page > 1 {
				current = mod.View.Goto(page - 1)
			}
			if all {
				return renderTable(c.Terminal, current.Matches, 0, params)
			}
			return renderPage(c.Terminal, current, mod.View.PageSize(), params)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or details")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print every match without paging")

	return cmd
}

func newCategoriesShow(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := params.Deps()
			if err != nil {
				return err
			}
			mod := c.Categories()
			defer mod.View.Close()

			category, err := mod.Gateway.GetCategory(cmd.Context(), args[0])
			if err != nil {
				c.Terminal.Error("Error!", models.UserMessage(err, showFailedMessage))
				return cli.Reported(err)
			}
			return formatter.CategoryDetail(cmd.OutOrStdout(), category, params.Clock())
		},
	}
}

// mountCategories restores the last snapshot and loads the list. When the
// load fails but a snapshot exists, the snapshot is used.
func mountCategories(cmd *cobra.Command, params *cli.CmdParams) (*deps.Container, *categories.Module, error) {
	c, err := params.Deps()
	if err != nil {
		return nil, nil, err
	}
	mod := c.Categories()
	ctx := cmd.Context()

	if err := mod.Store.Restore(ctx); err != nil {
		c.Logger.Warn("category snapshot not restored", logger.Fields{"error": err.Error()})
	}
	if _, err := mod.View.Mount(ctx); err != nil {
		c.Terminal.Error("Error!", models.UserMessage(err, loadFailedMessage))
		if mod.Store.Len() == 0 {
			mod.View.Close()
			return nil, nil, cli.Reported(err)
		}
		c.Terminal.Printf("Showing %s from the last snapshot.\n",
			formatter.Plural(mod.Store.Len(), "cached category", "cached categories"))
	}
	return c, mod, nil
}

func renderPage(term *terminal.Terminal, page categories.Page, pageSize int, params *cli.CmdParams) error {
	if page.Query != "" {
		term.Printf("Search: %q, %s\n", page.Query, formatter.Plural(page.Total, "match", "matches"))
	}
	if err := renderTable(term, page.Items, page.Index*pageSize, params); err != nil {
		return err
	}
	if page.ShowPagination {
		term.Printf("%s\n", formatter.PageFooter(page.Index, page.Count, page.Total))
	}
	return nil
}

func renderTable(term *terminal.Terminal, items []models.Category, offset int, params *cli.CmdParams) error {
	return formatter.CategoryTable(termWriter{term}, items, offset, params.Clock())
}

// termWriter serialises table output with toasts written to the same terminal.
type termWriter struct {
	term *terminal.Terminal
}

func (w termWriter) Write(p []byte) (int, error) {
	w.term.Printf("%s", p)
	return len(p), nil
}

// printFieldErrors lists per-field messages carried by a local validation
// failure or a rejected request.
func printFieldErrors(term *terminal.Terminal, err error) {
	var local *validator.Validator
	if errors.As(err, &local) {
		for _, field := range local.Fields() {
			term.Printf("  %s: %s\n", field, local.Errors[field])
		}
		return
	}
	var remote *models.RemoteError
	if errors.As(err, &remote) {
		for _, field := range slices.Sorted(maps.Keys(remote.Fields)) {
			term.Printf("  %s: %s\n", field, remote.Fields[field])
		}
	}
}

func rowIndex(arg string, page categories.Page, pageSize int) (int, error) {
	var row int
	if _, err := fmt.Sscanf(arg, "%d", &row); err != nil {
		return 0, fmt.Errorf("row must be a number: %q", arg)
	}
	first := page.Index*pageSize + 1
	if row < first || row >= first+len(page.Items) {
		return 0, fmt.Errorf("row %d is not on this page", row)
	}
	return row - first, nil
}
