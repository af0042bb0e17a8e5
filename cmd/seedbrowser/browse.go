package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/imagecache"
	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/source"
	"github.com/yangyang3917/minecraft-seed-site/pkg/tui"
)

func newBrowseCmd(root *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse seeds interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}

			if err := uiLogging(cmd); err != nil {
				return err
			}

			ctx := cmd.Context()
			log := klog.FromContext(ctx)

			m := metrics.New()
			if cfg.MetricsAddr != "" {
				stop := serveMetrics(ctx, cfg.MetricsAddr, m)
				defer stop()
			}

			reader := source.NewReader(ctx, cfg.GitHubToken)
			images, err := imagecache.New(cfg.CacheDir, cfg.ImageBase, reader, m)
			if err != nil {
				return err
			}

			store, err := openFlags(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			model := tui.New(ctx, tui.Options{
				Reader:        reader,
				DataSource:    cfg.DataSource,
				NoticeSource:  cfg.NoticeSource,
				Images:        images,
				Flags:         store,
				KnownVersions: cfg.KnownVersions,
				BatchSize:     cfg.BatchSize,
				Metrics:       m,
			})

			log.Info("starting browser", "data", cfg.DataSource, "images", cfg.ImageBase, "cache", images.Dir())
			if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	return cmd
}

// uiLogging keeps klog off the terminal while the UI owns it. Logs go to
// --log_file when set and are dropped otherwise.
func uiLogging(cmd *cobra.Command) error {
	klog.LogToStderr(false)
	for name, value := range map[string]string{
		"logtostderr":     "false",
		"alsologtostderr": "false",
		"stderrthreshold": "FATAL",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("configuring logging: %w", err)
		}
	}

	if f := cmd.Flags().Lookup("log_file"); f == nil || f.Value.String() == "" {
		klog.SetOutput(io.Discard)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics) func() {
	log := klog.FromContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "Metrics server stopped", "addr", addr)
		}
	}()
	log.Info("serving metrics", "addr", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "Shutting down metrics server")
		}
	}
}
