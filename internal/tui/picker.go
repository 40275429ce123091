// Package tui provides terminal user interface components for lxcctl
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uoi-cloud/lxcctl/internal/runtime"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionAttach
	ActionDestroy
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action    Action
	Container *runtime.Info
}

// containerItem implements list.Item for container display
type containerItem struct {
	info *runtime.Info
}

func (i containerItem) Title() string {
	return i.info.Name
}

func (i containerItem) Description() string {
	icon := "●"
	switch i.info.Status {
	case runtime.StatusRunning:
		icon = "✓"
	case runtime.StatusStopped:
		icon = "○"
	case runtime.StatusUnknown:
		icon = "⚠"
	}

	ip := "-"
	if len(i.info.Addresses) > 0 {
		ip = i.info.Addresses[0].String()
	}

	return fmt.Sprintf("%s %s | %s", icon, i.info.Status, ip)
}

func (i containerItem) FilterValue() string {
	return i.info.Name
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the container picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new container picker
func NewPicker(containers []*runtime.Info) Model {
	items := make([]list.Item, len(containers))
	for i, info := range containers {
		items[i] = containerItem{info: info}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "lxcctl - Select Container"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(containerItem); ok {
				m.result = PickerResult{
					Action:    ActionAttach,
					Container: item.info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(containerItem); ok {
				m.result = PickerResult{
					Action:    ActionDestroy,
					Container: item.info,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Attach  [d] Destroy  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive container picker
func RunPicker(containers []*runtime.Info) (PickerResult, error) {
	if len(containers) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(containers)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive listing for dumb terminals
func SimplePicker(containers []*runtime.Info) string {
	var sb strings.Builder

	sb.WriteString("lxcctl - Containers\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(containers) == 0 {
		sb.WriteString("No containers found.\n")
		sb.WriteString("Create one with: lxcctl up <name>\n")
		return sb.String()
	}

	for i, info := range containers {
		ip := "-"
		if len(info.Addresses) > 0 {
			ip = info.Addresses[0].String()
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s) %s\n", i+1, info.Name, info.Status, ip))
	}

	return sb.String()
}
