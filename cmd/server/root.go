package main

import (
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "listshare",
		Short:         "Shared lists served over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("port", "", "HTTP listen port (PORT)")
	flags.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	flags.String("auth-mode", "", "dev or oauth (AUTH_MODE)")
	_ = v.BindPFlag("PORT", flags.Lookup("port"))
	_ = v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = v.BindPFlag("AUTH_MODE", flags.Lookup("auth-mode"))

	root.AddCommand(
		newServeCommand(v),
		newMigrateCommand(v),
		newSeedDemoCommand(v),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads the configuration and installs the stdout logger.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logging.NewJSONHandler(os.Stdout, cfg.LogLevel)))
	return cfg, nil
}
