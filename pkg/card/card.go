// Package card turns seed records into the display cards every renderer
// shows, and prints them as text, JSON or YAML.
package card

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

// ImageDir is the directory, relative to the image base, holding seed
// screenshots named <seed>.png.
const ImageDir = "image"

// Card is the renderer-facing view of one record.
type Card struct {
	Seed          string   `json:"seed" yaml:"seed"`
	Platform      string   `json:"platform" yaml:"platform"`
	PlatformLabel string   `json:"platform_label" yaml:"platform_label"`
	Version       string   `json:"version" yaml:"version"`
	Coordinates   string   `json:"coordinates" yaml:"coordinates"`
	Features      []string `json:"features" yaml:"features"`
	Description   string   `json:"description" yaml:"description"`
	ImagePath     string   `json:"image_path,omitempty" yaml:"image_path,omitempty"`
}

// FromRecord builds the card for r.
func FromRecord(r seeds.Record) Card {
	labels := make([]string, 0, len(r.Features))
	for _, f := range r.Features {
		labels = append(labels, f.Label())
	}

	return Card{
		Seed:          string(r.Seed),
		Platform:      string(r.Platform),
		PlatformLabel: r.Platform.Label(),
		Version:       r.Version,
		Coordinates:   CoordinateText(r),
		Features:      labels,
		Description:   r.Description,
		ImagePath:     ImagePath(r.Seed),
	}
}

// FromRecords builds cards for a batch.
func FromRecords(records []seeds.Record) []Card {
	out := make([]Card, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// CoordinateText describes where to look in the world.
func CoordinateText(r seeds.Record) string {
	if r.SpawnPoint {
		return "Coordinates: spawn point"
	}
	return fmt.Sprintf("Coordinates: X: %d, Y: %d, Z: %d", r.X, r.Y, r.Z)
}

// ImagePath is derived from the seed alone. Records without a seed, or
// whose seed contains a path separator, have no image.
func ImagePath(seed seeds.SeedID) string {
	if seed == "" || strings.ContainsAny(string(seed), `/\`) {
		return ""
	}
	return ImageDir + "/" + string(seed) + ".png"
}

// Write prints cards in the given format: text (default), json or yaml.
func Write(w io.Writer, cards []Card, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	case "yaml":
		data, err := yaml.Marshal(cards)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := io.WriteString(w, FormatText(cards))
		return err
	}
}

// FormatText renders cards as a human-readable list.
func FormatText(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(fmt.Sprintf("%s  %s\n", c.PlatformLabel, c.Version))
		b.WriteString(fmt.Sprintf("  Seed: %s\n", c.Seed))
		b.WriteString(fmt.Sprintf("  %s\n", c.Coordinates))
		if len(c.Features) > 0 {
			b.WriteString(fmt.Sprintf("  Tags: %s\n", strings.Join(c.Features, ", ")))
		}
		if c.Description != "" {
			b.WriteString(fmt.Sprintf("  %s\n", c.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}
