// Package tui is the interactive task browser opened by the browse command.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskflow/internal/model"
	"github.com/idilsaglam/taskflow/internal/ui"
)

// Store is the subset of the task store the browser drives.
// Every change goes straight to the store, so it is persisted immediately.
type Store interface {
	Add(title, description string, priority int, deadline string) model.Task
	List() []model.Task
	MarkDone(id int, done bool) bool
	Remove(id int) bool
	Edit(id int, title, description string, priority int, deadline string) bool
}

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Title }
func (i listItem) Description() string { return i.task.Description }
func (i listItem) FilterValue() string { return i.task.Title + " " + i.task.Description }

// itemDelegate renders one task per line.
type itemDelegate struct {
	theme ui.Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := d.theme
	box := th.Muted.Render(th.BoxUnchecked)
	title := it.task.Title
	if it.task.Done {
		box = th.Success.Render(th.BoxChecked)
		title = th.DoneText.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", box, th.Muted.Render(fmt.Sprintf("#%-3d", it.task.ID)), title)
	if it.task.Priority != 0 {
		line += " " + th.Pending.Render(fmt.Sprintf("p%d", it.task.Priority))
	}
	if it.task.Deadline != "" {
		line += " " + th.Accent.Render("("+it.task.Deadline+")")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleKey   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	removeKey   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	prioUpKey   = key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "priority"))
	prioDownKey = key.NewBinding(key.WithKeys("-"))
	quitKey     = key.NewBinding(key.WithKeys("q", "ctrl+c"))
	backKey     = key.NewBinding(key.WithKeys("esc"))

	// input bar
	submitKey = key.NewBinding(key.WithKeys("enter"))
	cancelKey = key.NewBinding(key.WithKeys("esc"))
)

// Model is the Bubble Tea model of the browser.
type Model struct {
	store Store
	theme ui.Theme
	list  list.Model
	ti    textinput.Model

	mode     mode
	editID   int
	inputErr string
	status   string

	width, height int
}

// New builds the browser over store.
func New(store Store, theme ui.Theme) Model {
	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	bindings := func() []key.Binding { return []key.Binding{addKey, editKey, toggleKey, removeKey, prioUpKey} }
	l.AdditionalShortHelpKeys = bindings
	l.AdditionalFullHelpKeys = bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{store: store, theme: theme, list: l, ti: ti, width: 80, height: 24}
	m.resize()
	m.refresh()
	return m
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(store Store, theme ui.Theme) error {
	p := tea.NewProgram(New(store, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// refresh reloads the list from the store and keeps the cursor in range.
func (m *Model) refresh() tea.Cmd {
	tasks := m.store.List()
	items := make([]list.Item, 0, len(tasks))
	done := 0
	for _, t := range tasks {
		items = append(items, listItem{task: t})
		if t.Done {
			done++
		}
	}
	cmd := m.list.SetItems(items)
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}

	th := m.theme
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Tasks",
		th.SymOK, done,
		"•", len(tasks)-done,
		"Total", len(tasks),
	)
	return cmd
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != modeList {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	// while typing a filter every key belongs to the list
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, quitKey):
		return m, tea.Quit
	case key.Matches(km, backKey):
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(km, toggleKey):
		if t, ok := m.selected(); ok {
			m.store.MarkDone(t.ID, !t.Done)
			m.status = fmt.Sprintf("task %d toggled", t.ID)
			return m, m.refresh()
		}
		return m, nil
	case key.Matches(km, removeKey):
		if t, ok := m.selected(); ok {
			m.store.Remove(t.ID)
			m.status = fmt.Sprintf("task %d removed", t.ID)
			return m, m.refresh()
		}
		return m, nil
	case key.Matches(km, prioUpKey, prioDownKey):
		if t, ok := m.selected(); ok {
			p := t.Priority + 1
			if key.Matches(km, prioDownKey) {
				// edit cannot store negatives
				p = max(t.Priority-1, 0)
			}
			m.store.Edit(t.ID, "", "", p, "")
			return m, m.refresh()
		}
		return m, nil
	case key.Matches(km, addKey):
		m.mode = modeAdd
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New task title..."
		m.resize()
		return m, m.ti.Focus()
	case key.Matches(km, editKey):
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.inputErr = ""
			m.ti.SetValue(t.Title)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit task title..."
			m.resize()
			return m, m.ti.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateInput handles keys while the add/edit bar is open.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, submitKey):
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			if m.mode == modeAdd {
				t := m.store.Add(title, "", 0, "")
				m.status = fmt.Sprintf("added task %d", t.ID)
			} else if m.store.Edit(m.editID, title, "", -1, "") {
				m.status = fmt.Sprintf("edited task %d", m.editID)
			}
			m.closeInput()
			return m, m.refresh()
		case key.Matches(km, cancelKey):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) resize() {
	h := m.height - 5
	if m.mode != modeList {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != modeList {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add task"
		if m.mode == modeEdit {
			title = fmt.Sprintf("Edit task %d", m.editID)
		}
		if m.inputErr != "" {
			title += ": " + m.theme.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	if m.status != "" {
		content += "\n" + m.theme.Muted.Render(m.status)
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
