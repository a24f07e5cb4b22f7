package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs root with ctx, prints errors not yet shown and releases the
// dependencies.
func Execute(ctx context.Context, root *cobra.Command, params *CmdParams) error {
	err := root.ExecuteContext(ctx)
	if err != nil && !IsReported(err) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	if closeErr := params.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// ExecuteCommand runs a command and returns its output
func ExecuteCommand(root *cobra.Command, args ...string) (output string, err error) {
	_, output, err = ExecuteCommandC(root, args...)
	return output, err
}

// ExecuteCommandC runs a command and returns the command, its output, and any error
func ExecuteCommandC(root *cobra.Command, args ...string) (c *cobra.Command, output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	c, err = root.ExecuteC()

	return c, buf.String(), err
}
