package tui

import (
	"errors"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"globeview/internal/globe"
)

type move struct {
	dPitch, dYaw float64
	kind         globe.Transition
}

var moves = map[string]move{
	"up":          {45, 0, globe.WipeFromTop},
	"w":           {45, 0, globe.WipeFromTop},
	"shift+up":    {90, 0, globe.WipeFromTop},
	"W":           {90, 0, globe.WipeFromTop},
	"down":        {-45, 0, globe.WipeFromBottom},
	"s":           {-45, 0, globe.WipeFromBottom},
	"shift+down":  {-90, 0, globe.WipeFromBottom},
	"S":           {-90, 0, globe.WipeFromBottom},
	"left":        {0, -45, globe.WipeFromLeft},
	"a":           {0, -45, globe.WipeFromLeft},
	"shift+left":  {0, -90, globe.WipeFromLeft},
	"A":           {0, -90, globe.WipeFromLeft},
	"right":       {0, 45, globe.WipeFromRight},
	"d":           {0, 45, globe.WipeFromRight},
	"shift+right": {0, 90, globe.WipeFromRight},
	"D":           {0, 90, globe.WipeFromRight},
}

const invalidInput = "ERROR: Invalid (non-numeric) input."

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	// transitions started above queue their ticks on the scheduler
	return m, tea.Batch(cmd, m.sched.Flush())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fireMsg:
		m.sched.fire(msg.id)
		return nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(m.mapSize())
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return cmd
		}
		switch m.mode {
		case modeJump:
			return m.updateJump(msg)
		case modePlaces:
			return m.updatePlaces(msg)
		}
		if cmd, done := m.handleKey(msg); done {
			return cmd
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	return nil
}

// handleKey runs globe-mode commands. done is false for keys the sidebar
// list should also see.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	// the open sidebar keeps the arrow keys for its list
	if m.showSidebar && (key == "up" || key == "down") {
		return nil, false
	}
	if mv, ok := moves[key]; ok {
		m.navigate(mv)
		return nil, true
	}
	switch key {
	case "ctrl+c", "q":
		return tea.Quit, true
	case "[":
		m.nav.RotateLeft()
		m.setStatus("rotated left")
	case "]":
		m.nav.RotateRight()
		m.setStatus("rotated right")
	case "j":
		m.mode = modeJump
		m.jump.open()
		m.setStatus("jump: enter latitude and longitude")
		return textinput.Blink, true
	case "p":
		m.mode = modePlaces
		m.refreshPlaces()
		if m.mode == modePlaces {
			m.tbl.Focus()
			m.setStatus("places: enter to jump, esc to close")
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
		m.canvas.Resize(m.mapSize())
	case "h":
		m.helpVisible = !m.helpVisible
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
		return nil, true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) navigate(mv move) {
	m.nav.Navigate(mv.dPitch, mv.dYaw, mv.kind)
	m.setStatus(string(mv.kind))
}

func (m *Model) updateJump(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeGlobe
		m.jump.close()
		m.setStatus("view mode")
		return nil
	case "tab", "shift+tab":
		m.jump.toggle()
		return nil
	case "c":
		m.jump.reset()
		return nil
	case "enter":
		lat, lon := m.jump.values()
		if err := m.nav.JumpTo(lat, lon); err != nil {
			if errors.Is(err, globe.ErrInvalidInput) {
				m.setError(invalidInput)
			} else {
				m.setError(err.Error())
			}
			return nil
		}
		m.mode = modeGlobe
		m.jump.close()
		m.setStatus("jumped to " + lat + ", " + lon)
		return nil
	}
	return m.jump.update(msg)
}

func (m *Model) updatePlaces(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "p":
		m.mode = modeGlobe
		m.tbl.Blur()
		m.setStatus("view mode")
		return nil
	case "enter":
		if b, ok := m.selectedPlace(); ok {
			m.nav.JumpToBookmark(b)
			m.mode = modeGlobe
			m.tbl.Blur()
			m.setStatus("jumped to " + b.Place)
		}
		return nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return cmd
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}
