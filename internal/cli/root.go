package cli

import (
	"github.com/fatih/color"
	"github.com/joefazee/neo-admin/app"
	"github.com/joefazee/neo-admin/internal/deps"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/internal/nexus"
	"github.com/joefazee/neo-admin/internal/terminal"
	"github.com/spf13/cobra"
)

// NewRoot creates and configures the root command
func NewRoot(params *CmdParams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           params.Use,
		Short:         params.Short,
		Long:          params.Long,
		Version:       params.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[AnnotationStandalone] != "" {
				return nil
			}
			return connect(cmd, params)
		},
	}

	rootCmd.AddCommand(params.Palette...)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&params.ConfigFile, "config", "", "config file (default is "+app.DefaultConfigFile+" when present)")
	flags.StringVar(&params.Overrides.API.BaseURL, "api-url", "", "admin API base URL")
	flags.StringVar(&params.Overrides.Auth.Token, "token", "", "access token sent as a bearer credential")
	flags.StringVar(&params.Overrides.Log.Level, "log-level", "", "log level: debug, info, warn, error or off")
	flags.BoolVar(&params.NoColor, "no-color", false, "disable coloured output")

	return rootCmd
}

func connect(cmd *cobra.Command, params *CmdParams) error {
	opts := []nexus.LoaderOption{nexus.WithOverrides(&params.Overrides)}
	if params.ConfigFile != "" {
		opts = append(opts, nexus.WithFileName(params.ConfigFile))
	}
	cfg, err := app.LoadConfig(opts...)
	if err != nil {
		return err
	}

	log := logger.NewZeroLogger(params.logOutput(), logger.ParseLevel(cfg.Log.Level), logger.Fields{"app": params.Use})
	term := terminal.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		terminal.WithColor(cfg.UI.Color && !params.NoColor && !color.NoColor),
		terminal.WithAssumeYes(params.AssumeYes),
	)

	container, err := deps.NewContainer(cmd.Context(), cfg, term, log)
	if err != nil {
		return err
	}
	params.deps = container
	return nil
}
