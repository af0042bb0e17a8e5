package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yangyang3917/minecraft-seed-site/pkg/filter"
)

func newVersionsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Show the version checklist and how many seeds each entry matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			st := filter.NewState(cfg.KnownVersions)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSEEDS")
			for _, v := range st.KnownVersions() {
				st.SetVersions([]string{v})
				fmt.Fprintf(w, "%s\t%d\n", v, len(filter.Apply(ds, st)))
			}

			known := st.KnownVersions()
			for _, v := range ds.Versions() {
				if !slices.Contains(known, v) {
					fmt.Fprintf(w, "%s\t(not in checklist)\n", v)
				}
			}
			return w.Flush()
		},
	}
}
