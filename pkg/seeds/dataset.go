package seeds

import (
	"slices"

	"github.com/yangyang3917/minecraft-seed-site/pkg/version"
)

// Dataset is the loaded catalog. It is sorted once when built and never
// modified afterwards, so it can be shared freely.
type Dataset struct {
	records []Record
}

// NewDataset copies records and sorts them: newest version first, Java
// before other platforms within a version, then seeds in ascending numeric
// order. Records that compare equal keep their input order.
func NewDataset(records []Record) *Dataset {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, compareRecords)
	return &Dataset{records: sorted}
}

// Records returns the records in catalog order. Callers must not modify the
// returned slice.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Versions returns the distinct version strings present in the dataset,
// newest first.
func (d *Dataset) Versions() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.Records() {
		if _, ok := seen[r.Version]; ok {
			continue
		}
		seen[r.Version] = struct{}{}
		out = append(out, r.Version)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return version.Compare(version.Parse(b), version.Parse(a))
	})
	return out
}

func compareRecords(a, b Record) int {
	if c := version.Compare(version.Parse(b.Version), version.Parse(a.Version)); c != 0 {
		return c
	}

	aJava, bJava := a.Platform == Java, b.Platform == Java
	switch {
	case aJava && !bJava:
		return -1
	case !aJava && bJava:
		return 1
	}

	return a.Seed.Compare(b.Seed)
}
