package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yangyang3917/minecraft-seed-site/pkg/localflags"
)

func newThemeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the stored color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(localflags.ThemeLight), string(localflags.ThemeDark), "toggle"},
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			store, err := openFlags(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var theme localflags.Theme
			switch {
			case len(argv) == 0:
				theme, err = store.Theme()
			case argv[0] == "toggle":
				theme, err = store.ToggleTheme()
			default:
				theme, err = localflags.ParseTheme(argv[0])
				if err == nil {
					err = store.SetTheme(theme)
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}
