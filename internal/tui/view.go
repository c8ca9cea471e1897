package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := m.contentHeight()
	contentWidth := max(10, m.width)
	mapWidth, mapHeight := m.mapSize()

	// Header
	header := titleStyle.Render(" globeview ─ terminal globe viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, contentHeight-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch m.mode {
	case modePlaces:
		maxW := min(mapWidth, max(32, m.placesWidth()))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case modeJump:
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, m.jump.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.canvas.View())
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status and help, then coordinates
	status := dimStyle.Render(" " + m.status + " ")
	if m.statusErr {
		status = errStyle.Render(" " + m.status + " ")
	}
	help := m.renderHelp()
	if lipgloss.Width(status)+lipgloss.Width(help) > contentWidth {
		help = ""
	}
	line1 := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, help))
	line2 := lipgloss.NewStyle().Width(contentWidth).Render(m.renderCoordinates())
	footer := lipgloss.JoinVertical(lipgloss.Left, line1, line2)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderCoordinates() string {
	c := m.hud.c
	o := m.nav.Orientation()
	return fmt.Sprintf(" lat %s  lon %s   %s %s   rot %.0f",
		c.LatText, c.LonText, c.LatDMS, c.LonDMS, o.Rotation)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→/wasd 45°",
		"shift 90°",
		"[ ] rotate",
		"j jump",
		"p places",
		"Tab datasets",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
