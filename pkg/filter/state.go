package filter

import (
	"slices"
	"strings"

	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

// DefaultVersions is the version checklist offered when no list is
// configured.
var DefaultVersions = []string{
	"1.12", "1.16", "1.16.1", "1.17", "1.18", "1.19",
	"1.19.2", "1.20", "1.20.1", "1.20.2", "1.20.3",
	"1.21", "1.21.1", "1.21.2", "1.21.3", "1.21.4",
	"1.21.5", "1.21.6", "1.21.7", "1.21.8", "1.21.9",
	"1.21.10", "1.21.11", "1.21.12",
}

// State holds the active filter criteria. An empty facet is a valid
// selection that matches nothing; it is never replaced by the default.
//
// State is not safe for concurrent use.
type State struct {
	knownVersions []string

	platforms  []seeds.Platform
	versions   []string
	features   []seeds.Feature
	searchText string
}

// NewState returns a State at its defaults. knownVersions is the full
// version checklist; nil means DefaultVersions.
func NewState(knownVersions []string) *State {
	if knownVersions == nil {
		knownVersions = DefaultVersions
	}
	s := &State{knownVersions: slices.Clone(knownVersions)}
	s.Reset()
	return s
}

// Reset restores every facet to its default.
func (s *State) Reset() {
	s.platforms = slices.Clone(seeds.Platforms)
	s.versions = slices.Clone(s.knownVersions)
	s.features = slices.Clone(seeds.KnownFeatures)
	s.searchText = ""
}

func (s *State) SetPlatforms(platforms []seeds.Platform) {
	s.platforms = dedupe(platforms)
}

func (s *State) SetVersions(versions []string) {
	s.versions = dedupe(versions)
}

func (s *State) SetFeatures(features []seeds.Feature) {
	s.features = dedupe(features)
}

// SetSearchText stores text with surrounding whitespace removed.
func (s *State) SetSearchText(text string) {
	s.searchText = strings.TrimSpace(text)
}

// TogglePlatform adds p if absent and removes it otherwise.
func (s *State) TogglePlatform(p seeds.Platform) {
	s.platforms = toggle(s.platforms, p)
}

func (s *State) ToggleVersion(v string) {
	s.versions = toggle(s.versions, v)
}

func (s *State) ToggleFeature(f seeds.Feature) {
	s.features = toggle(s.features, f)
}

func (s *State) Platforms() []seeds.Platform { return slices.Clone(s.platforms) }
func (s *State) Versions() []string          { return slices.Clone(s.versions) }
func (s *State) Features() []seeds.Feature   { return slices.Clone(s.features) }
func (s *State) SearchText() string          { return s.searchText }

// KnownVersions returns the full version checklist.
func (s *State) KnownVersions() []string { return slices.Clone(s.knownVersions) }

func (s *State) HasPlatform(p seeds.Platform) bool { return slices.Contains(s.platforms, p) }
func (s *State) HasVersion(v string) bool          { return slices.Contains(s.versions, v) }
func (s *State) HasFeature(f seeds.Feature) bool   { return slices.Contains(s.features, f) }

func dedupe[T comparable](in []T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func toggle[T comparable](in []T, v T) []T {
	if i := slices.Index(in, v); i >= 0 {
		return slices.Delete(slices.Clone(in), i, i+1)
	}
	return append(slices.Clone(in), v)
}
