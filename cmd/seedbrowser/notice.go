package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/notice"
	"github.com/yangyang3917/minecraft-seed-site/pkg/source"
)

func newNoticeCmd(root *rootOptions) *cobra.Command {
	var dismiss bool

	cmd := &cobra.Command{
		Use:   "notice",
		Short: "Print the current notice if it has not been dismissed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := openFlags(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := notice.Load(ctx, source.NewReader(ctx, cfg.GitHubToken), cfg.NoticeSource)
			if err != nil {
				klog.FromContext(ctx).V(1).Info("no notice available", "error", err)
			}
			if !notice.Pending(n, store) {
				fmt.Fprintln(out, "No new notice.")
				return nil
			}

			fmt.Fprintf(out, "%s\n\n%s\n", n.Date, n.Notice)
			if dismiss {
				return notice.Dismiss(store, n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dismiss, "dismiss", false, "do not show this notice again")
	return cmd
}
