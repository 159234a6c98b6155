package cmd

import (
	"context"
	"fmt"

	"atlan-sdk/core/database"
	"atlan-sdk/feature/assets"
	"atlan-sdk/feature/batch"
	"atlan-sdk/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// failuresCmd is the parent command for the failure journal.
var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "Inspect and replay assets whose save failed",
	Long: `Failed batches captured by 'upsert --capture-failures --journal' are kept
in the journal database until a replay saves them.`,
}

var failuresListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending failures",
	RunE:  runFailuresList,
}

var failuresReplayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Save pending failures again",
	Long: `Adds every pending asset to a batch built from the BATCH_* settings and
flushes it. Assets saved successfully are marked replayed; the rest stay
pending for the next replay.`,
	RunE: runFailuresReplay,
}

func init() {
	failuresCmd.AddCommand(failuresListCmd, failuresReplayCmd)
	RootCmd.AddCommand(failuresCmd)
}

func openJournal(ctx context.Context, cfg database.Config, l *zap.Logger) (*batch.Journal, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	j := batch.NewJournal(db, l)
	if err := j.Migrate(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func runFailuresList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	j, err := openJournal(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	records, err := j.Pending(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", r.ID, r.FailedAt.Format("2006-01-02T15:04:05Z07:00"), r.TypeName, r.QualifiedName, r.Reason)
	}
	l.Info("Pending failures", zap.Int("count", len(records)))
	return nil
}

func runFailuresReplay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	j, err := openJournal(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	opts, err := cfg.Batch.Options()
	if err != nil {
		return err
	}
	// Assets that fail again must stay in the journal.
	opts.CaptureFailures = true

	api, err := newAPI(cfg, l)
	if err != nil {
		return err
	}
	b := batch.New(assets.NewService(api, l), search.NewService(api, l), opts, l)

	n, err := j.Replay(ctx, b)
	if err != nil {
		return err
	}
	l.Info("Replay finished",
		zap.Int("replayed", n),
		zap.Int("created", b.NumCreated()),
		zap.Int("updated", b.NumUpdated()),
		zap.Int("failed_batches", len(b.Failures())))
	return nil
}
