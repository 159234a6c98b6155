package batch

import (
	"fmt"
	"strings"

	"atlan-sdk/feature/assets"
)

// DefaultSize is the batch size used when none is configured.
const DefaultSize = 20

// CreationHandling decides what happens to assets that do not exist yet.
type CreationHandling string

const (
	// CreateFull creates missing assets.
	CreateFull CreationHandling = "full"
	// CreatePartial creates missing assets marked as incomplete.
	CreatePartial CreationHandling = "partial"
	// CreateNone skips missing assets, which makes the batch update-only.
	CreateNone CreationHandling = "none"
)

// ParseCreationHandling accepts full, partial or none in any case. An empty
// string means full.
func ParseCreationHandling(s string) (CreationHandling, error) {
	switch h := CreationHandling(strings.ToLower(s)); h {
	case CreateFull, CreatePartial, CreateNone:
		return h, nil
	case "":
		return CreateFull, nil
	}
	return "", fmt.Errorf("unknown creation handling %q", s)
}

// Options configure an AssetBatch.
type Options struct {
	Size            int
	ReplaceTags     bool
	CustomMetadata  assets.CustomMetadataHandling
	CaptureFailures bool
	Creation        CreationHandling
	Track           bool
	CaseInsensitive bool
	// TableViewAgnostic matches a Table, View or MaterialisedView with the
	// same qualified name as the same asset, keeping the type found.
	TableViewAgnostic bool
}

// DefaultOptions returns options that create everything and track results.
func DefaultOptions() Options {
	return Options{
		Size:           DefaultSize,
		CustomMetadata: assets.CustomMetadataIgnore,
		Creation:       CreateFull,
		Track:          true,
	}
}

// UpdateOnly returns o changed so that missing assets are skipped.
func (o Options) UpdateOnly() Options {
	o.Creation = CreateNone
	return o
}

// Options converts configuration into batch options.
func (c Config) Options() (Options, error) {
	cm, err := assets.ParseCustomMetadataHandling(c.CustomMetadata)
	if err != nil {
		return Options{}, err
	}
	creation, err := ParseCreationHandling(c.Creation)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Size:              c.Size,
		ReplaceTags:       c.ReplaceTags,
		CustomMetadata:    cm,
		CaptureFailures:   c.CaptureFailures,
		Creation:          creation,
		Track:             c.Track,
		CaseInsensitive:   c.CaseInsensitive,
		TableViewAgnostic: c.TableViewAgnostic,
	}, nil
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Creation == "" {
		o.Creation = CreateFull
	}
	if o.CustomMetadata == "" {
		o.CustomMetadata = assets.CustomMetadataIgnore
	}
	return o
}

func (o Options) saveOptions() assets.SaveOptions {
	return assets.SaveOptions{ReplaceTags: o.ReplaceTags, CustomMetadata: o.CustomMetadata}
}
