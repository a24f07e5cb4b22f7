package commands

import (
	"errors"
	"strings"

	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/joefazee/neo-admin/models"
	"github.com/spf13/cobra"
)

const browseHelp = "s <term> search, n next, p previous, d <row> delete, r reload, q quit"

func newCategoriesBrowse(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse categories interactively",
		Long:  `Page through categories, search and delete them from an interactive prompt. ` + browseHelp + `.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, mod, err := mountCategories(cmd, params)
			if err != nil {
				return err
			}
			defer mod.View.Close()

			ctx := cmd.Context()
			term := c.Terminal
			size := mod.View.PageSize()
			page := mod.View.Current()

			for {
				if err := renderPage(term, page, size, params); err != nil {
					return err
				}
				term.Printf("[%s]\n> ", browseHelp)

				line, err := term.ReadLine(ctx)
				if errors.Is(err, terminal.ErrNoInput) {
					return nil
				}
				if err != nil {
					return err
				}

				action, arg, _ := strings.Cut(line, " ")
				arg = strings.TrimSpace(arg)
				switch strings.ToLower(action) {
				case "q", "quit", "exit":
					return nil
				case "s", "search":
					page = mod.View.Search(arg)
				case "n", "next":
					var moved bool
					if page, moved = mod.View.Next(); !moved {
						term.Printf("Already on the last page.\n")
					}
				case "p", "prev":
					var moved bool
					if page, moved = mod.View.Prev(); !moved {
						term.Printf("Already on the first page.\n")
					}
				case "r", "reload":
					if err := mod.View.Refresh(ctx); err != nil {
						term.Error("Error!", models.UserMessage(err, loadFailedMessage))
					}
					page = mod.View.Current()
				case "d", "delete":
					i, err := rowIndex(arg, page, size)
					if err != nil {
						term.Printf("%v\n", err)
						continue
					}
					err = deleteCategory(cmd, term, mod, page.Items[i])
					if errors.Is(err, terminal.ErrNoInput) {
						return nil
					}
					if err != nil && !cli.IsReported(err) {
						return err
					}
					page = mod.View.Current()
				default:
					term.Printf("Unknown command %q.\n", line)
				}
			}
		},
	}
}
