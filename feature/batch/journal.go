package batch

import (
	"context"
	"fmt"
	"time"

	"atlan-sdk/feature/assets"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FailureRecord is one asset of a captured failed batch.
type FailureRecord struct {
	ID            uint       `gorm:"primaryKey;column:id"`
	BatchID       string     `gorm:"column:batch_id;type:varchar(36);index"`
	TypeName      string     `gorm:"column:type_name;type:varchar(255)"`
	QualifiedName string     `gorm:"column:qualified_name;type:varchar(1024)"`
	Payload       string     `gorm:"column:payload;type:text"`
	Reason        string     `gorm:"column:reason;type:text"`
	FailedAt      time.Time  `gorm:"column:failed_at"`
	ReplayedAt    *time.Time `gorm:"column:replayed_at;index"`
}

// TableName overrides the table name used by GORM.
func (FailureRecord) TableName() string {
	return "batch_failures"
}

// Journal persists captured failures so they can be replayed.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewJournal creates a journal on db. Call Migrate once before use.
func NewJournal(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{db: db, logger: logger, now: time.Now}
}

// Migrate creates or updates the journal table.
func (j *Journal) Migrate(ctx context.Context) error {
	if err := j.db.WithContext(ctx).AutoMigrate(&FailureRecord{}); err != nil {
		return fmt.Errorf("failed to migrate failure journal: %w", err)
	}
	return nil
}

// Record stores every asset of the failed batches and returns the number
// of rows written.
func (j *Journal) Record(ctx context.Context, failures ...FailedBatch) (int, error) {
	var records []FailureRecord
	for _, f := range failures {
		batchID := uuid.NewString()
		for _, a := range f.Assets {
			payload, err := assets.Marshal(a)
			if err != nil {
				return 0, fmt.Errorf("failed to encode %s: %w", assets.IdentityOf(a), err)
			}
			records = append(records, FailureRecord{
				BatchID:       batchID,
				TypeName:      a.Header().TypeName,
				QualifiedName: assets.QualifiedNameOf(a),
				Payload:       string(payload),
				Reason:        f.Reason(),
				FailedAt:      f.FailedAt,
			})
		}
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := j.db.WithContext(ctx).CreateInBatches(&records, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to record %d failed assets: %w", len(records), err)
	}
	j.logger.Info("Recorded failed assets", zap.Int("count", len(records)), zap.Int("batches", len(failures)))
	return len(records), nil
}

// Pending returns the records not replayed yet, oldest first.
func (j *Journal) Pending(ctx context.Context) ([]FailureRecord, error) {
	var records []FailureRecord
	if err := j.db.WithContext(ctx).Where("replayed_at IS NULL").Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load pending failures: %w", err)
	}
	return records, nil
}

// Replay adds every pending asset to b and flushes it. Records whose
// assets were saved are marked replayed; assets that fail again stay
// pending. It returns the number of records marked.
func (j *Journal) Replay(ctx context.Context, b *AssetBatch) (int, error) {
	records, err := j.Pending(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	before := len(b.Failures())
	for _, rec := range records {
		a, err := assets.Decode([]byte(rec.Payload))
		if err != nil {
			return 0, fmt.Errorf("failed to decode failure %d: %w", rec.ID, err)
		}
		if _, err := b.Add(ctx, a); err != nil {
			return 0, fmt.Errorf("failed to replay failure %d: %w", rec.ID, err)
		}
	}
	if _, err := b.Flush(ctx); err != nil {
		return 0, fmt.Errorf("failed to replay failures: %w", err)
	}

	// Lookups may rewrite the casing of qualified names, so identities are
	// compared the same way the batch matched them.
	ci := b.Options().CaseInsensitive
	failedAgain := make(map[string]struct{})
	for _, f := range b.Failures()[before:] {
		for _, id := range f.Identities() {
			failedAgain[id.Key(ci)] = struct{}{}
		}
	}
	var done []uint
	for _, rec := range records {
		id := assets.Identity{TypeName: rec.TypeName, QualifiedName: rec.QualifiedName}
		if _, ok := failedAgain[id.Key(ci)]; !ok {
			done = append(done, rec.ID)
		}
	}
	if len(done) == 0 {
		return 0, nil
	}
	err = j.db.WithContext(ctx).Model(&FailureRecord{}).Where("id IN ?", done).Update("replayed_at", j.now()).Error
	if err != nil {
		return 0, fmt.Errorf("failed to mark %d failures replayed: %w", len(done), err)
	}
	j.logger.Info("Replayed failed assets", zap.Int("replayed", len(done)), zap.Int("failedAgain", len(records)-len(done)))
	return len(done), nil
}
