package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/config"
	"github.com/yangyang3917/minecraft-seed-site/pkg/localflags"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
	"github.com/yangyang3917/minecraft-seed-site/pkg/source"
)

type rootOptions struct {
	configPath string
	dataSource string
}

func main() {
	// A missing .env is normal; the environment may already be set.
	_ = godotenv.Load()

	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "seedbrowser",
		Short:         "Browse and filter a catalog of Minecraft world seeds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(fs)
	cmd.PersistentFlags().AddGoFlagSet(fs)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dataSource, "data", "", "seed dataset location: file, URL or github://owner/repo/path[@ref]")

	cmd.AddCommand(
		newBrowseCmd(opts),
		newListCmd(opts),
		newVersionsCmd(opts),
		newThemeCmd(opts),
		newNoticeCmd(opts),
	)
	return cmd
}

// loadConfig applies command line overrides on top of the config file.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataSource != "" {
		cfg.DataSource = o.dataSource
	}
	return cfg, nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*seeds.Dataset, error) {
	return seeds.Load(ctx, source.NewReader(ctx, cfg.GitHubToken), cfg.DataSource)
}

func openFlags(ctx context.Context, cfg *config.Config) (*localflags.Store, error) {
	store, err := localflags.Open(cfg.StateDB)
	if err != nil {
		return nil, fmt.Errorf("opening local state: %w", err)
	}
	klog.FromContext(ctx).V(2).Info("local state opened", "path", cfg.StateDB)
	return store, nil
}
