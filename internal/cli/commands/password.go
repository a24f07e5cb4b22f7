package commands

import (
	"errors"

	"github.com/joefazee/neo-admin/app/account"
	"github.com/joefazee/neo-admin/internal/cli"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/spf13/cobra"
)

// NewPassword groups the account password commands.
func NewPassword(params *cli.CmdParams) *cobra.Command {
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the admin password",
	}
	passwordCmd.AddCommand(newPasswordChange(params))
	return passwordCmd
}

func newPasswordChange(params *cli.CmdParams) *cobra.Command {
	inputs := []struct {
		field account.Field
		flag  string
		label string
		value string
	}{
		{field: account.FieldCurrent, flag: "current", label: "Current password"},
		{field: account.FieldNew, flag: "new", label: "New password"},
		{field: account.FieldReenter, flag: "reenter", label: "Re-enter new password"},
	}

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the signed-in admin's password",
		Long:  `Change the password of the signed-in admin. Values not given as flags are read from standard input.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := params.Deps()
			if err != nil {
				return err
			}
			form := c.PasswordForm()

			for i := range inputs {
				in := &inputs[i]
				if !cmd.Flags().Changed(in.flag) {
					c.Terminal.Printf("%s: ", in.label)
					line, err := c.Terminal.ReadLine(cmd.Context())
					if err != nil && !errors.Is(err, terminal.ErrNoInput) {
						return err
					}
					in.value = line
				}
				if err := form.Set(in.field, in.value); err != nil {
					return err
				}
			}

			if err := form.Submit(cmd.Context()); err != nil {
				errs := form.Errors()
				for _, in := range inputs {
					if msg, ok := errs[in.field]; ok {
						c.Terminal.Printf("  %s: %s\n", in.flag, msg)
					}
				}
				return cli.Reported(err)
			}
			return nil
		},
	}

	for i := range inputs {
		cmd.Flags().StringVar(&inputs[i].value, inputs[i].flag, "", inputs[i].label)
	}
	return cmd
}
