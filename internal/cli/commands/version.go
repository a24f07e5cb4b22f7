package commands

import (
	"fmt"
	"runtime"

	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/spf13/cobra"
)

// NewVersion prints the build version.
func NewVersion(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version of " + params.Use,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cli.AnnotationStandalone: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s %s/%s)\n",
				params.Use, params.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Palette returns every top level command.
func Palette(params *cli.CmdParams) []*cobra.Command {
	return []*cobra.Command{
		NewCategories(params),
		NewPassword(params),
		NewVersion(params),
	}
}
