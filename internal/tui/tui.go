// Package tui implements the interactive task list for nag.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/nag/internal/core/task"
	"github.com/colonyops/nag/internal/nag"
)

type mode int

const (
	modeList mode = iota
	modeInput
	modeSearch
	modeConfirmDelete
)

const refreshInterval = time.Second

type tickMsg time.Time

// Model is the Bubble Tea model for the task list.
type Model struct {
	app    *nag.App
	buffer *AlertBuffer
	toasts *ToastController
	st     styles

	mode   mode
	input  textinput.Model
	editID string

	cursor         int
	statusFilter   task.Status
	priorityFilter task.Priority
	search         string
	showAlerts     bool
	status         string
	width          int
	height         int
}

// NewModel builds the initial model. The buffer must already be installed
// as the scheduler's sink.
func NewModel(app *nag.App, buffer *AlertBuffer) Model {
	ti := textinput.New()
	ti.Placeholder = "task text !high @tomorrow"
	ti.CharLimit = 256
	ti.Width = 50

	return Model{
		app:          app,
		buffer:       buffer,
		toasts:       NewToastController(),
		st:           newStyles(app.Config.Theme),
		input:        ti,
		statusFilter: task.StatusAll,
		status:       "a add • e edit • space toggle • d delete • / search • q quit",
	}
}

// Run wires the scheduler to the UI and blocks until the user quits.
func Run(ctx context.Context, app *nag.App) error {
	buffer := NewAlertBuffer()
	app.Scheduler.SetSink(buffer)
	app.Scheduler.Start(ctx)
	defer app.Scheduler.Stop()

	program := tea.NewProgram(NewModel(app, buffer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.buffer.Wait(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-10)
		return m, nil

	case tickMsg:
		m.toasts.Tick(refreshInterval)
		return m, tick()

	case alertsMsg:
		for _, a := range m.buffer.Drain() {
			m.toasts.Push(a)
		}
		return m, m.buffer.Wait()

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInputMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	}

	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	visible := m.visible()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(visible))

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "a":
		m.mode = modeInput
		m.editID = ""
		m.input.SetValue("")
		m.input.Focus()
		m.status = "add: enter to save, esc to cancel"

	case "e":
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[m.cursor]
		m.mode = modeInput
		m.editID = t.ID
		m.input.SetValue(renderEntry(t))
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "edit: enter to save, esc to cancel"

	case " ", "enter":
		if len(visible) == 0 {
			return m, nil
		}
		updated, ok := m.app.Tasks.ToggleCompletion(ctx, visible[m.cursor].ID)
		if ok && updated.Completed {
			m.status = "completed: " + updated.Text
		} else if ok {
			m.status = "reopened: " + updated.Text
		}

	case "d":
		if len(visible) == 0 {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("delete %q? y/n", visible[m.cursor].Text)

	case "c":
		removed := m.app.Tasks.ClearCompleted(ctx)
		m.status = fmt.Sprintf("cleared %d completed", removed)
		m.cursor = clamp(m.cursor, len(m.visible()))

	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.search)
		m.input.Focus()
		m.status = "search: enter to apply, esc to clear"

	case "f":
		m.statusFilter = nextStatus(m.statusFilter)
		m.cursor = 0

	case "p":
		m.priorityFilter = nextPriority(m.priorityFilter)
		m.cursor = 0

	case "tab":
		m.showAlerts = !m.showAlerts

	case "m":
		enabled := !m.app.Scheduler.Enabled()
		m.app.Scheduler.SetEnabled(enabled)
		if enabled {
			m.status = "notifications on"
		} else {
			m.status = "notifications muted"
		}

	case "t":
		if m.app.Scheduler.TestAlert(ctx) {
			m.status = "test notification sent"
		}

	case "esc":
		if m.toasts.HasToasts() {
			m.toasts.DismissAll()
		} else if m.search != "" {
			m.search = ""
			m.cursor = 0
		}
	}

	return m, nil
}

func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.status = "cancelled"
		return m, nil

	case "enter":
		return m.commitInput()

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	ctx := context.Background()

	text, priority, due, err := parseEntry(m.input.Value(), time.Now())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	if m.editID != "" {
		current, ok := m.app.Tasks.Get(m.editID)
		if !ok {
			m.status = "task is gone"
		} else {
			if priority == "" {
				priority = current.Priority
			}
			m.app.Tasks.Update(ctx, m.editID, text, priority, due)
			m.status = "updated: " + text
		}
	} else {
		created, err := m.app.Tasks.Create(ctx, text, priority, due)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "added: " + created.Text
		m.cursor = 0
	}

	m.mode = modeList
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.search = ""
		m.cursor = 0
		m.input.Blur()
		return m, nil

	case "enter":
		m.mode = modeList
		m.search = m.input.Value()
		m.cursor = 0
		m.input.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	if key == "y" {
		visible := m.visible()
		if len(visible) > 0 && m.app.Tasks.Delete(context.Background(), visible[m.cursor].ID) {
			m.status = "deleted"
		}
		m.cursor = clamp(m.cursor, len(m.visible()))
	} else {
		m.status = "kept"
	}

	m.mode = modeList
	return m, nil
}

// visible applies the current filters to the live task list.
func (m Model) visible() []task.Task {
	return task.Filter(m.app.Tasks.Tasks(), task.FilterOptions{
		Status:   m.statusFilter,
		Priority: m.priorityFilter,
		Search:   m.search,
	})
}

func nextStatus(s task.Status) task.Status {
	switch s {
	case task.StatusAll:
		return task.StatusPending
	case task.StatusPending:
		return task.StatusCompleted
	default:
		return task.StatusAll
	}
}

func nextPriority(p task.Priority) task.Priority {
	switch p {
	case "":
		return task.PriorityHigh
	case task.PriorityHigh:
		return task.PriorityMedium
	case task.PriorityMedium:
		return task.PriorityLow
	default:
		return ""
	}
}

func clamp(i, length int) int {
	if length == 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
