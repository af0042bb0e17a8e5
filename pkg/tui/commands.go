package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/imagecache"
	"github.com/yangyang3917/minecraft-seed-site/pkg/notice"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

const toastDuration = 3 * time.Second

type datasetLoadedMsg struct {
	dataset *seeds.Dataset
	err     error
}

type noticeLoadedMsg struct {
	notice *notice.Notice
}

type imageLoadedMsg struct {
	generation int
	index      int
	image      imagecache.Image
}

type copyResultMsg struct {
	seed string
	err  error
}

type toastExpiredMsg struct {
	id int
}

func loadDatasetCmd(ctx context.Context, r Reader, location string) tea.Cmd {
	return func() tea.Msg {
		ds, err := seeds.Load(ctx, r, location)
		return datasetLoadedMsg{dataset: ds, err: err}
	}
}

// loadNoticeCmd never fails; a notice that cannot be loaded is no notice.
func loadNoticeCmd(ctx context.Context, r Reader, location string) tea.Cmd {
	return func() tea.Msg {
		n, err := notice.Load(ctx, r, location)
		if err != nil {
			klog.FromContext(ctx).V(2).Info("no notice", "location", location, "error", err)
			return noticeLoadedMsg{}
		}
		return noticeLoadedMsg{notice: n}
	}
}

func fetchImageCmd(ctx context.Context, images ImageFetcher, generation, index int, path string) tea.Cmd {
	return func() tea.Msg {
		img, err := images.Ensure(ctx, path)
		if err != nil {
			klog.FromContext(ctx).V(3).Info("image fetch failed", "image", path, "error", err)
		}
		return imageLoadedMsg{generation: generation, index: index, image: img}
	}
}

func copySeedCmd(copyFn func(string) error, seed string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{seed: seed, err: copyFn(seed)}
	}
}

func expireToastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
