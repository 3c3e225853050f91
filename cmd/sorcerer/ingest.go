package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/providers/rag"
	"github.com/sandevgo/sorcerer/internal/service/ingest"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/sandevgo/sorcerer/internal/service/ui"
	"github.com/sandevgo/sorcerer/internal/storage/sqlite"
	"github.com/sandevgo/sorcerer/pkg/log"
	"github.com/spf13/cobra"
)

var (
	ingestFormat      string
	ingestParallelism int
)

var ingestCmd = &cobra.Command{
	Use:          "ingest <file>",
	Short:        "Load a knowledge dataset into the store and vector index",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := config.LoadEnv(ctx); err != nil {
			return fmt.Errorf("failed to load env: %w", err)
		}
		appCfg := config.NewAppConfig(ctx)
		ragCfg := config.NewRAGConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		repo := sqlite.NewKnowledgeRepo(db)
		lookup := knowledge.NewLookup(repo, 0)

		var in *ingest.Ingester
		if ragCfg.Enabled() {
			model, err := rag.NewEmbeddingModel(ragCfg)
			if err != nil {
				return err
			}
			embedder := rag.NewEmbedder(model).
				WithTimeout(appCfg.CallTimeout).
				WithChunker(rag.ChunkerConfigFor(ragCfg.ModelName))
			defer embedder.Shutdown()
			in = ingest.NewIngester(repo, embedder, sqlite.NewVectorIndex(db), lookup, ingestParallelism)
		} else {
			logger.Warn().Msg("no embedding endpoint configured, vectors will not be written")
			in = ingest.NewIngester(repo, nil, nil, lookup, ingestParallelism)
		}

		format := ingest.Format(ingestFormat)
		if format == "" {
			format = ingest.FormatFromPath(args[0])
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()

		stats, err := in.Run(ctx, f, format)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d entries, %d vectors\n", ui.UsageStyle.Render("ingested"), stats.Entries, stats.Vectors)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFormat, "format", "f", "", "dataset format: jsonl or yaml (default: from file extension)")
	ingestCmd.Flags().IntVarP(&ingestParallelism, "parallel", "p", 4, "concurrent embedding calls")
	rootCmd.AddCommand(ingestCmd)
}
