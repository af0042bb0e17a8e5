package filter

import (
	"strings"

	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
	"github.com/yangyang3917/minecraft-seed-site/pkg/version"
)

// Apply returns the records of ds that satisfy every facet of st, in
// dataset order. A record is kept when its platform is selected, at least
// one selected version matches its version, it has at least one feature and
// one of them is selected, and the search text is empty or occurs in its
// description ignoring case.
func Apply(ds *seeds.Dataset, st *State) []seeds.Record {
	search := strings.ToLower(st.searchText)

	out := make([]seeds.Record, 0)
	for _, r := range ds.Records() {
		if !st.HasPlatform(r.Platform) {
			continue
		}
		if !matchesAnyVersion(r.Version, st.versions) {
			continue
		}
		if !matchesAnyFeature(r.Features, st) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAnyVersion(seedVersion string, selected []string) bool {
	for _, v := range selected {
		if version.Matches(seedVersion, v) {
			return true
		}
	}
	return false
}

// Records without features never match.
func matchesAnyFeature(features []seeds.Feature, st *State) bool {
	for _, f := range features {
		if st.HasFeature(f) {
			return true
		}
	}
	return false
}
