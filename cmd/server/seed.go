package main

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/database"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/seed"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errDevToolsDisabled = errors.New("seed-demo requires DEV_TOOLS_ENABLED=true")

func newSeedDemoCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Create the demo users and their lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if !cfg.DevToolsEnabled {
				return errDevToolsDisabled
			}
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return err
			}

			st := store.New(db)
			res, err := seed.Demo(cmd.Context(), st, services.NewUserService(st))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users (%d lists, %d items): %v\n",
				res.Users, res.Lists, res.Items, res.Handles)
			return err
		},
	}
}
