package main

import (
	"fmt"
	"path/filepath"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/service/installer"
	"github.com/sandevgo/sorcerer/internal/service/ui"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Interactively write the runtime .env file",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		envPath := filepath.Join(config.GetRuntimePath(), ".env")

		if _, err := installer.RunWizard(envPath, initForce); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.UsageStyle.Render("wrote"), envPath)
		fmt.Fprintln(cmd.OutOrStdout(), ui.DescStyle.Render("Load a dataset with 'sorcerer ingest <file>', then run 'sorcerer serve'."))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .env file")
	rootCmd.AddCommand(initCmd)
}
