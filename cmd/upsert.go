package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"atlan-sdk/core/config"
	"atlan-sdk/core/database"
	"atlan-sdk/core/storage"
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/batch"
	"atlan-sdk/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the upsert command
	upsertFile          string
	upsertStoragePrefix string
	upsertParallel      int
	upsertUpdateOnly    bool
	upsertJournal       bool
	upsertReport        bool
	upsertCreation      string
	upsertCaseInsens    bool
	upsertTableView     bool
	upsertReplaceTags   bool
	upsertCustomMeta    string
	upsertCapture       bool
)

// upsertCmd saves assets in batches.
var upsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or update assets in batches",
	Long: `Reads a JSON array of assets and saves it through a batch.

Assets come from a local file or from every .json object under a prefix
in the configured storage bucket. Batch defaults come from BATCH_* settings
and can be overridden with flags.

Examples:
  # Save assets from a file
  upsert --file assets.json

  # Only update assets that already exist, 8 requests at a time
  upsert --file assets.json --update-only --parallel 8

  # Load from storage, record failures in the journal and publish a report
  upsert --storage-prefix inbound/ --capture-failures --journal --report`,
	RunE: runUpsert,
}

func init() {
	f := upsertCmd.Flags()
	f.StringVar(&upsertFile, "file", "", "Local JSON file holding an array of assets")
	f.StringVar(&upsertStoragePrefix, "storage-prefix", "", "Load asset files under this storage prefix")
	f.IntVar(&upsertParallel, "parallel", 0, "Number of shards (0 uses BATCH_PARALLELISM, 1 disables sharding)")
	f.BoolVar(&upsertUpdateOnly, "update-only", false, "Skip assets that do not exist yet")
	f.StringVar(&upsertCreation, "creation", "", "Creation handling: full, partial or none")
	f.BoolVar(&upsertCaseInsens, "case-insensitive", false, "Match existing qualified names regardless of case")
	f.BoolVar(&upsertTableView, "table-view-agnostic", false, "Treat tables and views with the same name as one asset")
	f.BoolVar(&upsertReplaceTags, "replace-tags", false, "Replace Atlan tags on existing assets")
	f.StringVar(&upsertCustomMeta, "custom-metadata", "", "Custom metadata handling: ignore, merge or overwrite")
	f.BoolVar(&upsertCapture, "capture-failures", false, "Record failed saves instead of stopping")
	f.BoolVar(&upsertJournal, "journal", false, "Write captured failures to the failure journal database")
	f.BoolVar(&upsertReport, "report", false, "Publish a run report to storage")

	RootCmd.AddCommand(upsertCmd)
}

// bulkSaver is satisfied by AssetBatch and ParallelBatch.
type bulkSaver interface {
	batch.Results
	Add(ctx context.Context, a assets.Asset) (*assets.MutationResponse, error)
	Flush(ctx context.Context) (*assets.MutationResponse, error)
}

func runUpsert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if (upsertFile == "") == (upsertStoragePrefix == "") {
		return fmt.Errorf("exactly one of --file or --storage-prefix is required")
	}

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	opts, err := upsertOptions(cmd, cfg)
	if err != nil {
		return err
	}

	var reporter *batch.Reporter
	if upsertStoragePrefix != "" || upsertReport {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		reporter = batch.NewReporter(store, cfg.Storage, cfg.Batch.ReportPrefix, l)
	}

	list, err := loadAssets(ctx, reporter)
	if err != nil {
		return err
	}
	l.Info("Loaded assets", zap.Int("count", len(list)))

	api, err := newAPI(cfg, l)
	if err != nil {
		return err
	}
	saver := assets.NewService(api, l)
	finder := search.NewService(api, l)

	shards := cfg.Batch.Parallelism
	if upsertParallel > 0 {
		shards = upsertParallel
	}
	var b bulkSaver
	if shards > 1 {
		b = batch.NewParallel(saver, finder, opts, shards, l)
	} else {
		b = batch.New(saver, finder, opts, l)
	}

	started := time.Now()
	for _, a := range list {
		if _, err := b.Add(ctx, a); err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}
	}
	if _, err := b.Flush(ctx); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	finished := time.Now()

	printUpsertReport(l, b)

	if upsertJournal && len(b.Failures()) > 0 {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		j := batch.NewJournal(db, l)
		if err := j.Migrate(ctx); err != nil {
			return err
		}
		n, err := j.Record(ctx, b.Failures()...)
		if err != nil {
			return err
		}
		l.Info("Recorded failures in journal", zap.Int("count", n))
	}

	if upsertReport {
		name, err := reporter.Publish(ctx, batch.NewReport(b, started, finished))
		if err != nil {
			return fmt.Errorf("failed to publish report: %w", err)
		}
		l.Info("Run report available", zap.String("object", name))
	}
	return nil
}

// upsertOptions applies explicitly set flags over the batch configuration.
func upsertOptions(cmd *cobra.Command, cfg *config.Config) (batch.Options, error) {
	bc := cfg.Batch
	flags := cmd.Flags()
	if flags.Changed("creation") {
		bc.Creation = upsertCreation
	}
	if flags.Changed("custom-metadata") {
		bc.CustomMetadata = upsertCustomMeta
	}
	if flags.Changed("case-insensitive") {
		bc.CaseInsensitive = upsertCaseInsens
	}
	if flags.Changed("table-view-agnostic") {
		bc.TableViewAgnostic = upsertTableView
	}
	if flags.Changed("replace-tags") {
		bc.ReplaceTags = upsertReplaceTags
	}
	if flags.Changed("capture-failures") {
		bc.CaptureFailures = upsertCapture
	}

	opts, err := bc.Options()
	if err != nil {
		return batch.Options{}, err
	}
	if upsertUpdateOnly {
		opts = opts.UpdateOnly()
	}
	return opts, nil
}

func loadAssets(ctx context.Context, reporter *batch.Reporter) ([]assets.Asset, error) {
	if upsertStoragePrefix != "" {
		return reporter.LoadAssets(ctx, upsertStoragePrefix)
	}
	data, err := os.ReadFile(upsertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", upsertFile, err)
	}
	list, err := assets.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", upsertFile, err)
	}
	return list, nil
}

// printUpsertReport prints a summary of the batch using the logger.
func printUpsertReport(l *zap.Logger, b bulkSaver) {
	l.Info("Upsert report",
		zap.Int("created", b.NumCreated()),
		zap.Int("updated", b.NumUpdated()),
		zap.Int("skipped", len(b.Skipped())),
		zap.Int("failed_batches", len(b.Failures())),
	)

	// Show a sample of failures (max 5 for logger)
	failures := b.Failures()
	maxShow := min(5, len(failures))
	for _, f := range failures[:maxShow] {
		l.Warn("Failed batch",
			zap.Int("assets", len(f.Assets)),
			zap.String("reason", f.Reason()),
		)
	}
	if len(failures) > maxShow {
		l.Info("Additional failures not shown", zap.Int("count", len(failures)-maxShow))
	}
}
