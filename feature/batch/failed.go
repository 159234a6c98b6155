package batch

import (
	"time"

	"atlan-sdk/feature/assets"
)

// FailedBatch is a group of assets whose save failed.
type FailedBatch struct {
	Assets   []assets.Asset
	Err      error
	FailedAt time.Time
}

// Reason returns the failure message.
func (f FailedBatch) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Identities lists the identities of the failed assets.
func (f FailedBatch) Identities() []assets.Identity {
	ids := make([]assets.Identity, len(f.Assets))
	for i, a := range f.Assets {
		ids[i] = assets.IdentityOf(a)
	}
	return ids
}
