// Package tui is the interactive terminal browser.
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/imagecache"
	"github.com/yangyang3917/minecraft-seed-site/pkg/localflags"
	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/notice"
	"github.com/yangyang3917/minecraft-seed-site/pkg/session"
)

// proximity is how close to the last rendered card the selection may get
// before the next batch is loaded.
const proximity = 5

// Reader fetches the dataset and notice documents.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// ImageFetcher resolves a card's image. *imagecache.Cache satisfies it.
type ImageFetcher interface {
	Ensure(ctx context.Context, path string) (imagecache.Image, error)
}

// Flags persists the theme and the dismissed notice. *localflags.Store
// satisfies it.
type Flags interface {
	notice.Flags
	Theme() (localflags.Theme, error)
	ToggleTheme() (localflags.Theme, error)
}

type Options struct {
	Reader        Reader
	DataSource    string
	NoticeSource  string
	Images        ImageFetcher
	Flags         Flags
	KnownVersions []string
	BatchSize     int
	Metrics       *metrics.Metrics
	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

type searchBox struct {
	active   bool
	input    textinput.Model
	previous string
}

type versionPicker struct {
	active bool
	cursor int
}

type noticeOverlay struct {
	active bool
	notice *notice.Notice
	vp     viewport.Model
}

type Model struct {
	ctx  context.Context
	opts Options

	width  int
	height int

	loading bool
	err     error
	spinner spinner.Model

	session *session.Session
	cards   *cardList

	selected int
	offset   int

	search  searchBox
	picker  versionPicker
	overlay noticeOverlay

	theme   localflags.Theme
	styles  styles
	toast   string
	toastID int
}

// New builds the model. The dataset and notice are loaded by Init.
func New(ctx context.Context, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "description contains…"
	ti.CharLimit = 100
	ti.Width = 40

	theme := localflags.DefaultTheme
	if opts.Flags != nil {
		t, err := opts.Flags.Theme()
		if err != nil {
			klog.FromContext(ctx).Error(err, "Reading stored theme")
		}
		theme = t
	}

	m := &Model{
		ctx:     ctx,
		opts:    opts,
		loading: true,
		spinner: sp,
		cards:   &cardList{},
		search:  searchBox{input: ti},
		overlay: noticeOverlay{vp: viewport.New(60, 10)},
		theme:   theme,
		styles:  newStyles(theme),
	}
	m.spinner.Style = m.styles.accent
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.opts.Reader != nil {
		cmds = append(cmds, loadDatasetCmd(m.ctx, m.opts.Reader, m.opts.DataSource))
		if m.opts.NoticeSource != "" {
			cmds = append(cmds, loadNoticeCmd(m.ctx, m.opts.Reader, m.opts.NoticeSource))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlay.vp.Width = min(max(msg.Width-8, 20), 80)
		m.overlay.vp.Height = max(msg.Height/2, 5)
		m.clampOffset()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case datasetLoadedMsg:
		m.loading = false
		if msg.err != nil {
			klog.FromContext(m.ctx).Error(msg.err, "Loading seed data")
			m.err = msg.err
			break
		}
		m.session = session.New(msg.dataset, m.cards, session.Options{
			KnownVersions: m.opts.KnownVersions,
			BatchSize:     m.opts.BatchSize,
			Metrics:       m.opts.Metrics,
		})
		m.session.Refresh()
		m.selected, m.offset = 0, 0

	case noticeLoadedMsg:
		if notice.Pending(msg.notice, m.opts.Flags) {
			m.overlay.active = true
			m.overlay.notice = msg.notice
			m.overlay.vp.SetContent(msg.notice.Notice)
			m.overlay.vp.GotoTop()
		}

	case imageLoadedMsg:
		m.cards.setImage(msg.generation, msg.index, msg.image)

	case copyResultMsg:
		if msg.err != nil {
			klog.FromContext(m.ctx).V(1).Info("copy to clipboard failed", "seed", msg.seed, "error", msg.err)
			cmds = append(cmds, m.showToast("Copy failed"))
		} else {
			cmds = append(cmds, m.showToast("Copied seed "+msg.seed))
		}

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case m.overlay.active:
			cmds = append(cmds, m.handleNoticeKey(msg))
		case m.search.active:
			cmds = append(cmds, m.handleSearchKey(msg))
		case m.picker.active:
			cmds = append(cmds, m.handlePickerKey(msg))
		default:
			cmds = append(cmds, m.handleKey(msg))
		}
	}

	cmds = append(cmds, m.imageCmds()...)
	return m, tea.Batch(cmds...)
}

// imageCmds starts one fetch per newly rendered card.
func (m *Model) imageCmds() []tea.Cmd {
	pending := m.cards.takePending()
	if m.opts.Images == nil {
		for _, i := range pending {
			m.cards.slots[i].image = imagePlaceholder
		}
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, i := range pending {
		path := m.cards.slots[i].card.ImagePath
		if path == "" {
			m.cards.slots[i].image = imagePlaceholder
			continue
		}
		cmds = append(cmds, fetchImageCmd(m.ctx, m.opts.Images, m.cards.generation, i, path))
	}
	return cmds
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	return expireToastCmd(m.toastID)
}

func (m *Model) selectedCard() (cardSlot, bool) {
	if m.selected < 0 || m.selected >= m.cards.len() {
		return cardSlot{}, false
	}
	return m.cards.slots[m.selected], true
}

// refreshed is called after any filter change: the list was replaced, so the
// selection goes back to the top.
func (m *Model) refreshed() {
	m.selected, m.offset = 0, 0
}

func (m *Model) moveSelection(delta int) {
	n := m.cards.len()
	if n == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), n-1)
	m.loadIfNearEnd()
	m.clampOffset()
}

// loadIfNearEnd pages in the next batch once the selection is within
// proximity cards of the last rendered one.
func (m *Model) loadIfNearEnd() {
	if m.session == nil || !m.session.HasMore() {
		return
	}
	if m.selected >= m.cards.len()-proximity {
		m.session.LoadMore()
	}
}

func (m *Model) clampOffset() {
	visible := m.visibleCards()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	m.offset = max(m.offset, 0)
}

// Session exposes the browsing state, mostly for tests and status output.
func (m *Model) Session() *session.Session {
	return m.session
}

var _ session.RenderSink = (*cardList)(nil)
