package session

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

type recordingSink struct {
	resets  []int
	batches []int
	more    []bool
	shown   []seeds.SeedID
}

func (r *recordingSink) Reset(total int) {
	r.resets = append(r.resets, total)
	r.batches = nil
	r.more = nil
	r.shown = nil
}

func (r *recordingSink) Append(batch []seeds.Record, hasMore bool) {
	r.batches = append(r.batches, len(batch))
	r.more = append(r.more, hasMore)
	for _, rec := range batch {
		r.shown = append(r.shown, rec.Seed)
	}
}

func bigDataset(n int) *seeds.Dataset {
	records := make([]seeds.Record, 0, n)
	for i := 0; i < n; i++ {
		p := seeds.Java
		if i%2 == 1 {
			p = seeds.Bedrock
		}
		records = append(records, seeds.Record{
			Seed:        seeds.SeedID(fmt.Sprint(i)),
			Platform:    p,
			Version:     "1.21.4",
			Features:    []seeds.Feature{seeds.Terrain},
			Description: fmt.Sprintf("seed number %d", i),
		})
	}
	return seeds.NewDataset(records)
}

func TestRefreshRendersFirstBatch(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(120), sink, Options{})
	s.Refresh()

	if diff := cmp.Diff([]int{120}, sink.resets); diff != "" {
		t.Errorf("resets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{50}, sink.batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
	if s.Shown() != 50 || !s.HasMore() {
		t.Errorf("shown=%d hasMore=%v", s.Shown(), s.HasMore())
	}
}

func TestLoadMoreUntilExhausted(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(120), sink, Options{})
	s.Refresh()

	for s.LoadMore() {
	}

	if diff := cmp.Diff([]int{50, 50, 20}, sink.batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, false}, sink.more); diff != "" {
		t.Errorf("hasMore mismatch (-want +got):\n%s", diff)
	}
	if s.LoadMore() {
		t.Error("LoadMore should report false once exhausted")
	}
}

func TestFilterChangeResetsCursor(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(120), sink, Options{})
	s.Refresh()
	s.LoadMore()

	s.SetPlatforms([]seeds.Platform{seeds.Java})

	if s.Total() != 60 {
		t.Fatalf("total = %d, want 60", s.Total())
	}
	if diff := cmp.Diff([]int{50}, sink.batches); diff != "" {
		t.Errorf("after filter change batches mismatch (-want +got):\n%s", diff)
	}
	if s.Shown() != 50 {
		t.Errorf("shown = %d, want 50", s.Shown())
	}
	if sink.shown[0] != "0" {
		t.Errorf("first record after reset = %s, want 0", sink.shown[0])
	}
}

func TestEmptyResultsRenderNothing(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(10), sink, Options{})
	s.SetFeatures(nil)

	if diff := cmp.Diff([]int{0}, sink.resets); diff != "" {
		t.Errorf("resets mismatch (-want +got):\n%s", diff)
	}
	if len(sink.batches) != 0 {
		t.Errorf("expected no batches, got %v", sink.batches)
	}
	if s.HasMore() || s.LoadMore() {
		t.Error("empty result list should have nothing more")
	}
}

func TestSearchAndReset(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(30), sink, Options{BatchSize: 10})

	s.SetSearchText("NUMBER 2")
	// 2, 20..29
	if s.Total() != 11 {
		t.Errorf("total = %d, want 11", s.Total())
	}

	s.Reset()
	if s.Total() != 30 || s.State().SearchText() != "" {
		t.Errorf("reset left total=%d search=%q", s.Total(), s.State().SearchText())
	}
	if diff := cmp.Diff([]int{10}, sink.batches); diff != "" {
		t.Errorf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestToggles(t *testing.T) {
	sink := &recordingSink{}
	s := New(bigDataset(10), sink, Options{KnownVersions: []string{"1.21.4", "1.20"}})
	s.Refresh()

	s.TogglePlatform(seeds.Bedrock)
	if s.Total() != 5 {
		t.Errorf("after bedrock toggle total = %d, want 5", s.Total())
	}

	s.ToggleVersion("1.21.4")
	if s.Total() != 0 {
		t.Errorf("after version toggle total = %d, want 0", s.Total())
	}

	s.SetAllVersions()
	if s.Total() != 5 {
		t.Errorf("after select all total = %d, want 5", s.Total())
	}
	s.SetAllVersions()
	if len(s.State().Versions()) != 0 {
		t.Errorf("second select all should clear versions, got %v", s.State().Versions())
	}

	s.Reset()
	s.ToggleFeature(seeds.Terrain)
	if s.Total() != 0 {
		t.Errorf("after feature toggle total = %d, want 0", s.Total())
	}
}

func TestSetAllVersionsComparesSelection(t *testing.T) {
	s := New(bigDataset(4), &recordingSink{}, Options{KnownVersions: []string{"1.21.4", "1.20"}})
	s.Refresh()

	s.SetVersions([]string{"9.9", "1.20"})
	s.SetAllVersions()
	if diff := cmp.Diff([]string{"1.21.4", "1.20"}, s.State().Versions()); diff != "" {
		t.Errorf("selection with an unknown version should become all known (-want +got):\n%s", diff)
	}
	if s.Total() != 4 {
		t.Errorf("total = %d, want 4", s.Total())
	}

	s.SetVersions([]string{"1.20", "1.21.4"})
	s.SetAllVersions()
	if got := s.State().Versions(); len(got) != 0 {
		t.Errorf("all known selected in any order should clear, got %v", got)
	}
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	s := New(bigDataset(120), &recordingSink{}, Options{Metrics: m})
	s.Refresh()
	s.LoadMore()
	s.SetSearchText("number 1")

	if got := testutil.ToFloat64(m.FilterRecomputes); got != 2 {
		t.Errorf("recomputes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.BatchesServed); got != 3 {
		t.Errorf("batches = %v, want 3", got)
	}
}
