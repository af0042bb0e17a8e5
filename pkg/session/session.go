// Package session ties the dataset, filter criteria and paging cursor
// together and feeds batches of results to a renderer.
package session

import (
	"slices"

	"github.com/yangyang3917/minecraft-seed-site/pkg/filter"
	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/paging"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

// RenderSink displays results. Reset is called with the size of every new
// result list before its first batch; Append delivers batches in order.
type RenderSink interface {
	Reset(total int)
	Append(batch []seeds.Record, hasMore bool)
}

// Options configures a Session.
type Options struct {
	// KnownVersions is the version checklist; nil means
	// filter.DefaultVersions.
	KnownVersions []string
	// BatchSize is the number of records per batch; 0 means
	// paging.DefaultBatchSize.
	BatchSize int
	Metrics   *metrics.Metrics
}

// Session owns all mutable browsing state. It has exactly one owner: every
// method must be called from the same goroutine.
type Session struct {
	dataset *seeds.Dataset
	state   *filter.State
	cursor  *paging.Cursor
	results []seeds.Record
	sink    RenderSink
	metrics *metrics.Metrics
}

// New creates a session over ds. Nothing is rendered until Refresh or a
// setter is called.
func New(ds *seeds.Dataset, sink RenderSink, opts Options) *Session {
	return &Session{
		dataset: ds,
		state:   filter.NewState(opts.KnownVersions),
		cursor:  paging.New(opts.BatchSize),
		sink:    sink,
		metrics: opts.Metrics,
	}
}

// Refresh recomputes the results from the current criteria, resets the
// cursor and renders the first batch.
func (s *Session) Refresh() {
	s.results = filter.Apply(s.dataset, s.state)
	s.cursor.Reset()
	s.metrics.ObserveRecompute(len(s.results))

	s.sink.Reset(len(s.results))
	if len(s.results) > 0 {
		s.LoadMore()
	}
}

// LoadMore renders the next batch. It returns false when nothing was left.
func (s *Session) LoadMore() bool {
	if !s.cursor.HasMore(len(s.results)) {
		return false
	}
	batch, more := paging.Next(s.cursor, s.results)
	s.metrics.ObserveBatch()
	s.sink.Append(batch, more)
	return true
}

func (s *Session) SetPlatforms(p []seeds.Platform) {
	s.state.SetPlatforms(p)
	s.Refresh()
}

func (s *Session) SetVersions(v []string) {
	s.state.SetVersions(v)
	s.Refresh()
}

func (s *Session) SetFeatures(f []seeds.Feature) {
	s.state.SetFeatures(f)
	s.Refresh()
}

func (s *Session) SetSearchText(text string) {
	s.state.SetSearchText(text)
	s.Refresh()
}

func (s *Session) TogglePlatform(p seeds.Platform) {
	s.state.TogglePlatform(p)
	s.Refresh()
}

func (s *Session) ToggleVersion(v string) {
	s.state.ToggleVersion(v)
	s.Refresh()
}

func (s *Session) ToggleFeature(f seeds.Feature) {
	s.state.ToggleFeature(f)
	s.Refresh()
}

// Reset restores the default criteria and re-renders.
func (s *Session) Reset() {
	s.state.Reset()
	s.Refresh()
}

// SetAllVersions selects every known version, or none when exactly the
// known versions are already selected.
func (s *Session) SetAllVersions() {
	known := s.state.KnownVersions()
	selected := s.state.Versions()
	if len(selected) == len(known) && !slices.ContainsFunc(known, func(v string) bool {
		return !slices.Contains(selected, v)
	}) {
		s.SetVersions(nil)
		return
	}
	s.SetVersions(known)
}

// State exposes the criteria for display. Mutating it directly bypasses
// the re-render; use the Session setters instead.
func (s *Session) State() *filter.State { return s.state }

// Total is the size of the current result list.
func (s *Session) Total() int { return len(s.results) }

// Shown is the number of results handed to the sink so far.
func (s *Session) Shown() int { return s.cursor.Position() }

// HasMore reports whether LoadMore would render anything.
func (s *Session) HasMore() bool { return s.cursor.HasMore(len(s.results)) }

// Dataset returns the underlying catalog.
func (s *Session) Dataset() *seeds.Dataset { return s.dataset }
