package batch

import (
	"context"
	"fmt"
	"path"
	"time"

	"atlan-sdk/core/storage"
	"atlan-sdk/feature/assets"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Results is implemented by AssetBatch and ParallelBatch.
type Results interface {
	NumCreated() int
	NumUpdated() int
	Skipped() []assets.Asset
	Failures() []FailedBatch
	ResolvedGUIDs() map[string]string
}

// FailureSummary describes one failed batch in a report.
type FailureSummary struct {
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failedAt"`
	Assets   []string  `json:"assets"`
}

// Report summarizes one bulk upsert run.
type Report struct {
	ID            string            `json:"id"`
	StartedAt     time.Time         `json:"startedAt"`
	FinishedAt    time.Time         `json:"finishedAt"`
	Created       int               `json:"created"`
	Updated       int               `json:"updated"`
	Skipped       []string          `json:"skipped,omitempty"`
	Failures      []FailureSummary  `json:"failures,omitempty"`
	ResolvedGUIDs map[string]string `json:"resolvedGuids,omitempty"`
}

// NewReport summarizes results.
func NewReport(r Results, startedAt, finishedAt time.Time) Report {
	rep := Report{
		ID:            uuid.NewString(),
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		Created:       r.NumCreated(),
		Updated:       r.NumUpdated(),
		ResolvedGUIDs: r.ResolvedGUIDs(),
	}
	for _, a := range r.Skipped() {
		rep.Skipped = append(rep.Skipped, assets.IdentityOf(a).String())
	}
	for _, f := range r.Failures() {
		s := FailureSummary{Reason: f.Reason(), FailedAt: f.FailedAt}
		for _, id := range f.Identities() {
			s.Assets = append(s.Assets, id.String())
		}
		rep.Failures = append(rep.Failures, s)
	}
	return rep
}

// Reporter publishes run reports to object storage and reads asset files
// from it.
type Reporter struct {
	client storage.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
}

// NewReporter creates a reporter writing under prefix in the configured bucket.
func NewReporter(client storage.Client, cfg storage.Config, prefix string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{client: client, bucket: cfg.Bucket, region: cfg.Region, prefix: prefix, logger: logger}
}

// Publish uploads the report and returns its object name.
func (r *Reporter) Publish(ctx context.Context, rep Report) (string, error) {
	if err := storage.EnsureBucket(ctx, r.client, r.bucket, r.region); err != nil {
		return "", err
	}
	name := path.Join(r.prefix, rep.StartedAt.UTC().Format("2006-01-02"), rep.ID+".json")
	if _, err := storage.PutJSON(ctx, r.client, r.bucket, name, rep); err != nil {
		return "", err
	}
	r.logger.Info("Published run report",
		zap.String("bucket", r.bucket),
		zap.String("object", name),
		zap.Int("created", rep.Created),
		zap.Int("updated", rep.Updated),
		zap.Int("failures", len(rep.Failures)))
	return name, nil
}

// LoadAssets decodes every .json object under prefix. Each object holds a
// JSON array of assets in the wire format.
func (r *Reporter) LoadAssets(ctx context.Context, prefix string) ([]assets.Asset, error) {
	names, err := storage.ListNames(ctx, r.client, r.bucket, prefix, ".json")
	if err != nil {
		return nil, err
	}
	var out []assets.Asset
	for _, name := range names {
		data, err := storage.ReadObject(ctx, r.client, r.bucket, name)
		if err != nil {
			return nil, err
		}
		list, err := assets.DecodeList(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		r.logger.Debug("Loaded asset file", zap.String("object", name), zap.Int("assets", len(list)))
		out = append(out, list...)
	}
	return out, nil
}
