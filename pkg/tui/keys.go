package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/notice"
	"github.com/yangyang3917/minecraft-seed-site/pkg/seeds"
)

var featureKeys = map[string]seeds.Feature{
	"3": seeds.Terrain,
	"4": seeds.Structure,
	"5": seeds.Chest,
}

var platformKeys = map[string]seeds.Platform{
	"1": seeds.Java,
	"2": seeds.Bedrock,
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "q" {
		return tea.Quit
	}
	if m.session == nil {
		return nil
	}

	if p, ok := platformKeys[key]; ok {
		m.session.TogglePlatform(p)
		m.refreshed()
		return nil
	}
	if f, ok := featureKeys[key]; ok {
		m.session.ToggleFeature(f)
		m.refreshed()
		return nil
	}

	switch key {
	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)
	case "pgup":
		m.moveSelection(-m.visibleCards())
	case "pgdown":
		m.moveSelection(m.visibleCards())
	case "g", "home":
		m.refreshed()
	case "/":
		m.search.active = true
		m.search.previous = m.session.State().SearchText()
		m.search.input.SetValue(m.search.previous)
		m.search.input.CursorEnd()
		return m.search.input.Focus()
	case "v":
		m.picker = versionPicker{active: true}
	case "r":
		m.session.Reset()
		m.search.input.SetValue("")
		m.refreshed()
	case "n":
		m.session.LoadMore()
	case "c":
		slot, ok := m.selectedCard()
		if !ok || slot.card.Seed == "" {
			return m.showToast("Nothing to copy")
		}
		return copySeedCmd(m.opts.Clipboard, slot.card.Seed)
	case "t":
		return m.toggleTheme()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.search.active = false
		m.search.input.Blur()
		m.session.SetSearchText(m.search.input.Value())
		m.refreshed()
		return nil
	case "esc":
		m.search.active = false
		m.search.input.Blur()
		m.search.input.SetValue(m.search.previous)
		return nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	versions := m.session.State().KnownVersions()

	switch msg.String() {
	case "up", "k":
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
	case "down", "j":
		if m.picker.cursor < len(versions)-1 {
			m.picker.cursor++
		}
	case " ", "x":
		if m.picker.cursor < len(versions) {
			m.session.ToggleVersion(versions[m.picker.cursor])
			m.refreshed()
		}
	case "a":
		m.session.SetAllVersions()
		m.refreshed()
	case "esc", "enter", "v", "q":
		m.picker.active = false
	}
	return nil
}

func (m *Model) handleNoticeKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "q":
		m.overlay.active = false
		return nil
	case "d":
		m.overlay.active = false
		if err := notice.Dismiss(m.opts.Flags, m.overlay.notice); err != nil {
			klog.FromContext(m.ctx).Error(err, "Dismissing notice")
			return m.showToast("Could not save notice preference")
		}
		return nil
	}

	var cmd tea.Cmd
	m.overlay.vp, cmd = m.overlay.vp.Update(msg)
	return cmd
}

func (m *Model) toggleTheme() tea.Cmd {
	next := m.theme.Toggle()
	var cmd tea.Cmd
	if m.opts.Flags != nil {
		stored, err := m.opts.Flags.ToggleTheme()
		if err != nil {
			klog.FromContext(m.ctx).Error(err, "Saving theme")
			cmd = m.showToast("Theme not saved")
		} else {
			next = stored
		}
	}
	m.theme = next
	m.styles = newStyles(next)
	m.spinner.Style = m.styles.accent
	return cmd
}
