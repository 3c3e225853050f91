package main

import (
	"errors"
	"os"
	"os/signal"

	"github.com/sandevgo/sorcerer/internal/transport/mcp"
	"github.com/sandevgo/sorcerer/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:           "mcp",
	Short:         "Serve the fact tools over MCP stdio",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout belongs to the protocol.
		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		server := mcp.NewServer(os.Stdin, os.Stdout)
		err := server.Start(ctx)
		if err != nil && !errors.Is(err, ctx.Err()) {
			log.FromCtx(ctx).Error().Err(err).Msg("mcp server stopped")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
