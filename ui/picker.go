// Package ui contains the interactive session picker.
package ui

import (
	"fmt"
	"strings"

	"agent-pane/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const aliveIcon = "● "
const deadIcon = "○ "

var titleStyle = lipgloss.NewStyle().
	Padding(1, 1, 0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var aliveStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#51bd73", Dark: "#51bd73"})

var deadStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

var itemStyle = lipgloss.NewStyle().
	Padding(0, 1)

var selectedItemStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var helpStyle = lipgloss.NewStyle().
	Padding(1, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker lets the user choose one of the host's assistant panes and brings
// it to the foreground.
type Picker struct {
	host        session.Host
	panes       []session.Pane
	selectedIdx int
	width       int
	err         error
}

// NewPicker creates a picker over the given panes.
func NewPicker(host session.Host, panes []session.Pane) *Picker {
	return &Picker{host: host, panes: panes, width: 80}
}

// Err returns the error from showing the selected pane, if any.
func (p *Picker) Err() error {
	return p.err
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, keys.Up):
			if p.selectedIdx > 0 {
				p.selectedIdx--
			}
		case key.Matches(msg, keys.Down):
			if p.selectedIdx < len(p.panes)-1 {
				p.selectedIdx++
			}
		case key.Matches(msg, keys.Select):
			if len(p.panes) > 0 {
				p.err = p.host.Show(p.panes[p.selectedIdx])
			}
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *Picker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assistant sessions"))
	b.WriteString("\n")

	if len(p.panes) == 0 {
		b.WriteString(itemStyle.Render("no sessions found"))
		b.WriteString("\n")
		return b.String()
	}

	for i, pane := range p.panes {
		icon := aliveStyle.Render(aliveIcon)
		if pane.Dead {
			icon = deadStyle.Render(deadIcon)
		}

		line := fmt.Sprintf("%s%s  %s", icon, pane.ID, pane.Command.String())
		if pane.Session != "" {
			line += "  [" + pane.Session + "]"
		}
		line = runewidth.Truncate(line, p.width-4, "…")

		if i == p.selectedIdx {
			b.WriteString(selectedItemStyle.Render(line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move · enter show · q quit"))
	return b.String()
}
