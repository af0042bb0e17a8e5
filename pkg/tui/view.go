package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yangyang3917/minecraft-seed-site/pkg/localflags"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

const (
	cardHeight  = 7 // border(2) + five content lines
	chromeLines = 8 // header, filters, search, status and help lines
)

type styles struct {
	title    lipgloss.Style
	accent   lipgloss.Style
	dim      lipgloss.Style
	errText  lipgloss.Style
	toast    lipgloss.Style
	card     lipgloss.Style
	selected lipgloss.Style
	overlay  lipgloss.Style
}

func newStyles(theme localflags.Theme) styles {
	fg, dim, accent, border := lipgloss.Color("235"), lipgloss.Color("244"), lipgloss.Color("28"), lipgloss.Color("250")
	if theme == localflags.ThemeDark {
		fg, dim, accent, border = lipgloss.Color("252"), lipgloss.Color("242"), lipgloss.Color("78"), lipgloss.Color("238")
	}

	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		accent:   lipgloss.NewStyle().Foreground(accent),
		dim:      lipgloss.NewStyle().Foreground(dim),
		errText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		toast:    lipgloss.NewStyle().Bold(true).Foreground(fg).Background(border).Padding(0, 1),
		card:     lipgloss.NewStyle().Foreground(fg).Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		selected: lipgloss.NewStyle().Foreground(fg).Border(lipgloss.ThickBorder()).BorderForeground(accent).Padding(0, 1),
		overlay:  lipgloss.NewStyle().Foreground(fg).Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
	}
}

func (m *Model) visibleCards() int {
	if m.height == 0 {
		return 3
	}
	return max((m.height-chromeLines)/cardHeight, 1)
}

func (m *Model) View() string {
	if m.err != nil {
		return m.styles.errText.Render("Failed to load seed data. Please restart and try again.") +
			"\n" + m.styles.dim.Render(m.err.Error()) + "\n"
	}
	if m.loading {
		return m.spinner.View() + " Loading seeds…\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Minecraft Seeds"))
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("  %d seeds", m.session.Total())))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")
	b.WriteString(m.searchLine())
	b.WriteString("\n\n")

	switch {
	case m.overlay.active:
		b.WriteString(m.noticeView())
	case m.picker.active:
		b.WriteString(m.pickerView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	if m.toast != "" {
		b.WriteString(m.styles.toast.Render(m.toast))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.dim.Render(m.helpLine()))
	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m *Model) filterLine() string {
	st := m.session.State()
	var parts []string
	for i, p := range seeds.Platforms {
		parts = append(parts, fmt.Sprintf("%d%s %s", i+1, checkbox(st.HasPlatform(p)), p.Label()))
	}
	for i, f := range seeds.KnownFeatures {
		parts = append(parts, fmt.Sprintf("%d%s %s", i+3, checkbox(st.HasFeature(f)), f.Label()))
	}
	parts = append(parts, fmt.Sprintf("v versions %d/%d", len(st.Versions()), len(st.KnownVersions())))
	return strings.Join(parts, "  ")
}

func (m *Model) searchLine() string {
	if m.search.active {
		return "Search: " + m.search.input.View()
	}
	if text := m.session.State().SearchText(); text != "" {
		return m.styles.dim.Render("Search: ") + text
	}
	return m.styles.dim.Render("Search: (press / to search)")
}

func (m *Model) listView() string {
	if m.cards.len() == 0 {
		return m.styles.dim.Render("No seeds match the current filters.") + "\n"
	}

	var b strings.Builder
	end := min(m.offset+m.visibleCards(), m.cards.len())
	for i := m.offset; i < end; i++ {
		style := m.styles.card
		if i == m.selected {
			style = m.styles.selected
		}
		b.WriteString(style.Render(m.cardBody(m.cards.slots[i])))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("Showing %d of %d", m.cards.len(), m.cards.total)
	if m.cards.hasMore {
		status += "  (n to load more)"
	}
	b.WriteString(m.styles.dim.Render(status))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) cardBody(slot cardSlot) string {
	c := slot.card
	features := strings.Join(c.Features, " · ")
	if features == "" {
		features = "-"
	}

	var image string
	switch slot.image {
	case imageLoading:
		image = "image: loading…"
	case imageReady:
		image = "image: " + slot.file
	default:
		image = "image: unavailable"
	}

	lines := []string{
		m.styles.accent.Render(c.PlatformLabel) + "  " + c.Version + "  " + m.styles.dim.Render(c.Coordinates),
		"Seed: " + c.Seed,
		"Features: " + features,
		c.Description,
		m.styles.dim.Render(image),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) pickerView() string {
	st := m.session.State()
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Versions"))
	b.WriteString("\n")
	for i, v := range st.KnownVersions() {
		cursor := "  "
		if i == m.picker.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, checkbox(st.HasVersion(v)), v)
	}
	return m.styles.overlay.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m *Model) noticeView() string {
	title := m.styles.title.Render("Notice")
	if m.overlay.notice != nil && m.overlay.notice.Date != "" {
		title += m.styles.dim.Render("  " + m.overlay.notice.Date)
	}
	return m.styles.overlay.Render(title+"\n\n"+m.overlay.vp.View()) + "\n"
}

func (m *Model) helpLine() string {
	switch {
	case m.overlay.active:
		return "esc close · d don't show again"
	case m.search.active:
		return "enter apply · esc cancel"
	case m.picker.active:
		return "↑/↓ move · space toggle · a all/none · esc close"
	}
	return "↑/↓ move · / search · 1-5 toggle · v versions · n more · g top · r reset · c copy · t theme · q quit"
}
