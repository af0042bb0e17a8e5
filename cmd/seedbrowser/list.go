package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/card"
	"github.com/yangyang3917/minecraft-seed-site/pkg/filter"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
	"github.com/yangyang3917/minecraft-seed-site/pkg/session"
)

type listOptions struct {
	platforms []string
	versions  []string
	features  []string
	search    string
	pages     int
	all       bool
	output    string
}

// cardCollector is a render sink that keeps every card it is handed.
type cardCollector struct {
	total   int
	hasMore bool
	cards   []card.Card
}

func (c *cardCollector) Reset(total int) {
	c.total = total
	c.hasMore = false
	c.cards = nil
}

func (c *cardCollector) Append(batch []seeds.Record, hasMore bool) {
	c.cards = append(c.cards, card.FromRecords(batch)...)
	c.hasMore = hasMore
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print seeds matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q: must be text, json or yaml", opts.output)
			}
			if opts.pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", opts.pages)
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ds, err := loadDataset(ctx, cfg)
			if err != nil {
				return err
			}

			sink := &cardCollector{}
			s := session.New(ds, sink, session.Options{
				KnownVersions: cfg.KnownVersions,
				BatchSize:     cfg.BatchSize,
			})
			if err := opts.apply(cmd, s); err != nil {
				return err
			}

			s.Refresh()
			for page := 1; (opts.all || page < opts.pages) && s.LoadMore(); page++ {
			}

			klog.FromContext(ctx).V(1).Info("listing seeds", "shown", len(sink.cards), "total", sink.total)
			if err := card.Write(cmd.OutOrStdout(), sink.cards, opts.output); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if opts.output == "text" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Showing %d of %d seeds\n", len(sink.cards), sink.total)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.platforms, "platform", nil, "platforms to include: java, bedrock (default all)")
	cmd.Flags().StringSliceVar(&opts.versions, "version", nil, "version filters such as 1.21.4 or 1.20+ (default the known version list)")
	cmd.Flags().StringSliceVar(&opts.features, "feature", nil, "feature tags to include: terrain, structure, chest (default all)")
	cmd.Flags().StringVar(&opts.search, "search", "", "only seeds whose description contains this text")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of batches to print")
	cmd.Flags().BoolVar(&opts.all, "all", false, "print every matching seed")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

// apply sets the facets given on the command line. Facets left unset keep
// their defaults.
func (o *listOptions) apply(cmd *cobra.Command, s *session.Session) error {
	if cmd.Flags().Changed("platform") {
		platforms := make([]seeds.Platform, 0, len(o.platforms))
		for _, v := range o.platforms {
			p, err := seeds.ParsePlatform(v)
			if err != nil {
				return withSuggestion(err, v, platformNames())
			}
			platforms = append(platforms, p)
		}
		s.SetPlatforms(platforms)
	}

	if cmd.Flags().Changed("version") {
		s.SetVersions(o.versions)
	}

	if cmd.Flags().Changed("feature") {
		features := make([]seeds.Feature, 0, len(o.features))
		for _, v := range o.features {
			f := seeds.Feature(strings.ToLower(strings.TrimSpace(v)))
			if !f.Known() {
				return withSuggestion(fmt.Errorf("unknown feature %q", v), v, featureNames())
			}
			features = append(features, f)
		}
		s.SetFeatures(features)
	}

	if o.search != "" {
		s.SetSearchText(o.search)
	}
	return nil
}

func withSuggestion(err error, value string, candidates []string) error {
	if hint := filter.Suggest(value, candidates); hint != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, hint)
	}
	return fmt.Errorf("%w (valid values: %s)", err, strings.Join(candidates, ", "))
}

func platformNames() []string {
	names := make([]string, 0, len(seeds.Platforms))
	for _, p := range seeds.Platforms {
		names = append(names, string(p))
	}
	return names
}

func featureNames() []string {
	names := make([]string, 0, len(seeds.KnownFeatures))
	for _, f := range seeds.KnownFeatures {
		names = append(names, string(f))
	}
	return names
}
