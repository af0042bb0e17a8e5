package seeds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Platform is the game edition a seed was found on.
type Platform string

const (
	Java    Platform = "java"
	Bedrock Platform = "bedrock"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{Java, Bedrock}

// ParsePlatform validates a user-supplied platform name.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Label returns the display name. Unknown platforms are shown literally.
func (p Platform) Label() string {
	switch p {
	case Java:
		return "Java Edition"
	case Bedrock:
		return "Bedrock Edition"
	default:
		return string(p)
	}
}

// Feature is a category tag describing what a seed is notable for.
// The set is open: tags the program does not know about are kept and
// labelled by their literal text.
type Feature string

const (
	Terrain   Feature = "terrain"
	Structure Feature = "structure"
	Chest     Feature = "chest"
)

// KnownFeatures lists the built-in tags in display order.
var KnownFeatures = []Feature{Terrain, Structure, Chest}

// Known reports whether f is one of KnownFeatures.
func (f Feature) Known() bool {
	for _, known := range KnownFeatures {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns the display name of the tag.
func (f Feature) Label() string {
	switch f {
	case Terrain:
		return "Terrain"
	case Structure:
		return "Structure"
	case Chest:
		return "Chest"
	default:
		return string(f)
	}
}

// SeedID is a world seed. The dataset writes seeds either as JSON strings or
// as JSON numbers; numbers keep their literal text so large values survive.
type SeedID string

func (s *SeedID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SeedID(strings.TrimSpace(str))
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("seed must be a string or number: %w", err)
		}
		*s = SeedID(n.String())
		return nil
	}
}

// Compare orders seeds by the integer at the start of their text, the way
// the site has always sorted them: "123abc" reads as 123 and leading zeros
// are ignored. A seed with no leading integer compares equal to every other
// seed. Values of any length compare exactly.
func (s SeedID) Compare(other SeedID) int {
	aNeg, a, aok := leadingInteger(string(s))
	bNeg, b, bok := leadingInteger(string(other))
	if !aok || !bok {
		return 0
	}
	if a == "0" && b == "0" {
		return 0
	}

	switch {
	case aNeg && !bNeg:
		return -1
	case !aNeg && bNeg:
		return 1
	}
	c := compareDigits(a, b)
	if aNeg {
		return -c
	}
	return c
}

// leadingInteger returns the sign and digits (without leading zeros) of the
// integer prefix of s after leading spaces.
func leadingInteger(s string) (neg bool, digits string, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return false, "", false
	}
	digits = strings.TrimLeft(s[:end], "0")
	if digits == "" {
		digits = "0"
	}
	return neg, digits, true
}

func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Coord is one axis of an explicit position. Non-numeric values read as 0.
type Coord int

func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Coord(n)
	return nil
}

// Record is one catalog entry.
type Record struct {
	Seed        SeedID    `json:"seed" yaml:"seed"`
	Platform    Platform  `json:"platform" yaml:"platform"`
	Version     string    `json:"version" yaml:"version"`
	Features    []Feature `json:"features" yaml:"features"`
	Description string    `json:"description" yaml:"description"`
	SpawnPoint  bool      `json:"is_spawn_point" yaml:"is_spawn_point"`
	X           Coord     `json:"position_X" yaml:"position_X"`
	Y           Coord     `json:"position_Y" yaml:"position_Y"`
	Z           Coord     `json:"position_Z" yaml:"position_Z"`
}

// HasFeature reports whether the record carries tag f.
func (r Record) HasFeature(f Feature) bool {
	for _, tag := range r.Features {
		if tag == f {
			return true
		}
	}
	return false
}
