package cmd

import (
	"context"
	"log"

	"catalog-sync/core/config"
	"catalog-sync/core/logger"
	"catalog-sync/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncDryRun bool

// syncCmd runs a single sync pass and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass against the source catalog",
	Long: `Lists the full source catalog, sweeps vanished records, and reconciles
every record into exactly one operation (create, update, sold, skip or
skip-missing). With --dry-run, operations are decided and reported but
nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		service, err := buildService(cfg, logg)
		if err != nil {
			return err
		}

		summary, err := service.RunPass(context.Background(), sync.Options{DryRun: syncDryRun})
		if err != nil {
			return err
		}

		logg.Info("Pass summary",
			zap.Bool("dry_run", summary.DryRun),
			zap.Int("created", summary.Created),
			zap.Int("updated", summary.Updated),
			zap.Int("sold", summary.Sold),
			zap.Int("skipped", summary.Skipped),
			zap.Int("skipped_missing", summary.SkippedMissing),
			zap.Int("swept", summary.Swept),
			zap.Int("errors", summary.Errors),
			zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)))
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "decide operations without writing anything")
	RootCmd.AddCommand(syncCmd)
}
