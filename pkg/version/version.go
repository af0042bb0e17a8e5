package version

import (
	"strconv"
	"strings"
)

// Spec is a parsed version specifier such as "1.21.4" or "1.21+".
type Spec struct {
	Raw       string
	Major     int
	Minor     int
	Patch     int
	OpenEnded bool
}

// Parse never fails: missing or non-numeric components become 0.
func Parse(s string) Spec {
	spec := Spec{Raw: s, OpenEnded: strings.HasSuffix(s, "+")}

	parts := strings.Split(strings.Replace(s, "+", "", 1), ".")
	fields := []*int{&spec.Major, &spec.Minor, &spec.Patch}
	for i, part := range parts {
		if i >= len(fields) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		*fields[i] = n
	}

	return spec
}

// String returns the specifier as it was written.
func (s Spec) String() string {
	return s.Raw
}

// Matches reports whether a seed published for seedVersion should be shown
// when filterVersion is selected. The comparison is asymmetric:
//
//   - open seed, open filter: same major and seed minor <= filter minor
//   - open seed, concrete filter: same major and minor, patch ignored
//   - concrete seed, open filter: same major and seed minor >= filter minor
//   - concrete seed, concrete filter: identical strings
func Matches(seedVersion, filterVersion string) bool {
	seed := Parse(seedVersion)
	filter := Parse(filterVersion)

	switch {
	case seed.OpenEnded && filter.OpenEnded:
		return seed.Major == filter.Major && seed.Minor <= filter.Minor
	case seed.OpenEnded:
		return seed.Major == filter.Major && seed.Minor == filter.Minor
	case filter.OpenEnded:
		return seed.Major == filter.Major && seed.Minor >= filter.Minor
	default:
		return seedVersion == filterVersion
	}
}

// Compare orders two specs by major, minor and patch. The open-ended flag
// does not take part in the ordering.
func Compare(a, b Spec) int {
	switch {
	case a.Major != b.Major:
		return cmpInt(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmpInt(a.Minor, b.Minor)
	default:
		return cmpInt(a.Patch, b.Patch)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
