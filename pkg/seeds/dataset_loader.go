package seeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"k8s.io/klog/v2"
)

// Reader fetches the raw dataset document. *source.Reader satisfies it.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// ErrNoSeeds is returned for documents without a "seeds" array.
var ErrNoSeeds = errors.New(`document has no "seeds" array`)

type document struct {
	Seeds *[]Record `json:"seeds"`
}

// Load reads and parses the dataset at location. Any failure is returned;
// there is no partial dataset.
func Load(ctx context.Context, r Reader, location string) (*Dataset, error) {
	log := klog.FromContext(ctx)

	raw, err := r.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}

	ds, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	for _, rec := range ds.Records() {
		if _, err := ParsePlatform(string(rec.Platform)); err != nil {
			log.V(1).Info("record has unknown platform", "seed", rec.Seed, "platform", rec.Platform)
		}
		if len(rec.Features) == 0 {
			log.V(2).Info("record has no features and will never match", "seed", rec.Seed)
		}
	}

	log.Info("seed dataset loaded", "location", location, "records", ds.Len())
	return ds, nil
}

// Parse decodes a `{"seeds": [...]}` document.
func Parse(raw []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	if doc.Seeds == nil {
		return nil, fmt.Errorf("parse seed data: %w", ErrNoSeeds)
	}
	return NewDataset(*doc.Seeds), nil
}
