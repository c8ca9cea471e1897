package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// jumpForm holds the latitude and longitude inputs.
type jumpForm struct {
	inputs [2]textinput.Model
	focus  int
}

func newJumpForm() jumpForm {
	var f jumpForm
	for i, prompt := range []string{"lat ", "lon "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = "0"
		ti.CharLimit = 32
		ti.Width = 14
		ti.SetValue("0")
		f.inputs[i] = ti
	}
	return f
}

func (f *jumpForm) open() {
	f.focus = 0
	f.inputs[0].Focus()
	f.inputs[1].Blur()
}

func (f *jumpForm) close() {
	f.inputs[0].Blur()
	f.inputs[1].Blur()
}

func (f *jumpForm) toggle() {
	f.inputs[f.focus].Blur()
	f.focus = 1 - f.focus
	f.inputs[f.focus].Focus()
}

// reset puts both fields back to "0".
func (f *jumpForm) reset() {
	f.inputs[0].SetValue("0")
	f.inputs[1].SetValue("0")
}

func (f jumpForm) values() (lat, lon string) {
	return f.inputs[0].Value(), f.inputs[1].Value()
}

func (f *jumpForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f jumpForm) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Jump to"),
		f.inputs[0].View(),
		f.inputs[1].View(),
		dimStyle.Render("tab switch  enter jump  c clear  esc close"),
	)
	return boxStyle.Render(body)
}
