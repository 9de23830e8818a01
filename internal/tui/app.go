// Package tui implements the interactive command menu shown when lockey is
// invoked without a subcommand on a terminal.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"lockey/internal/i18n"
	"lockey/internal/perf"
)

type MenuItem struct {
	Name    string
	Summary string
}

func (m MenuItem) Title() string       { return m.Name }
func (m MenuItem) Description() string { return m.Summary }
func (m MenuItem) FilterValue() string { return m.Name }

// AppModel is the root TUI model. Choice holds the selected command name
// after the program finishes, or "" when the menu was dismissed.
type AppModel struct {
	list   list.Model
	Choice string
}

func NewAppModel(items []MenuItem) AppModel {
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, item)
	}

	l := list.New(listItems, newMenuDelegate(), 0, 0)
	l.Title = i18n.T("tui.title")
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle

	return AppModel{list: l}
}

func (m AppModel) Init() tea.Cmd { return nil }

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			perf.Mark("tui.menu.action.exit", nil)
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.Choice = item.Name
				perf.Mark("tui.menu.action.select", &perf.Details{"command": item.Name})
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	header := TitleStyle.Render(m.list.Title)
	hint := HelpStyle.Render(i18n.T("tui.hint"))
	return fmt.Sprintf("%s\n%s\n%s", header, m.list.View(), hint)
}

// RunApp builds the menu program for the given commands and I/O streams.
func RunApp(items []MenuItem, in io.Reader, out io.Writer) *tea.Program {
	perf.Mark("tui.menu.open", nil)
	return tea.NewProgram(NewAppModel(items), ProgramOptions(in, out)...)
}

func newMenuDelegate() list.DefaultDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.NormalTitle = ItemStyle
	delegate.Styles.SelectedTitle = SelectedItemStyle
	return delegate
}
