package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/nag/internal/core/deadline"
	"github.com/colonyops/nag/internal/core/notify"
	"github.com/colonyops/nag/internal/core/task"
)

func (m Model) View() string {
	var b strings.Builder
	now := time.Now()

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.showAlerts {
		b.WriteString(m.renderAlertsPanel())
		b.WriteString("\n")
	}

	if focus := task.Focus(m.app.Tasks.Tasks()); len(focus) > 0 {
		b.WriteString(m.st.Title.Render("Focus"))
		b.WriteString("\n")
		for _, t := range focus {
			b.WriteString("  " + m.st.Warning.Render("★ ") + m.renderTaskLine(t, now, true))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderList(now))

	if m.mode == modeInput || m.mode == modeSearch {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.st.Help.Render(m.status))
	b.WriteString("\n")

	for _, t := range m.toasts.Toasts() {
		b.WriteString(m.renderToast(t.alert))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderHeader() string {
	stats := m.app.Tasks.Stats()
	head := m.st.Title.Render("nag") + m.st.Muted.Render(
		fmt.Sprintf("  %d/%d done (%d%%)", stats.Completed, stats.Total, stats.Percent()))

	if count := m.app.Scheduler.Count(); count > 0 {
		head += "  " + m.st.Badge.Render(fmt.Sprintf("⚠ %d", count))
	}
	if !m.app.Scheduler.Enabled() {
		head += "  " + m.st.Muted.Render("muted")
	}

	filters := make([]string, 0, 3)
	if m.statusFilter != task.StatusAll && m.statusFilter != "" {
		filters = append(filters, "status:"+string(m.statusFilter))
	}
	if m.priorityFilter != "" {
		filters = append(filters, "priority:"+string(m.priorityFilter))
	}
	if m.search != "" {
		filters = append(filters, "search:"+m.search)
	}
	if len(filters) > 0 {
		head += "  " + m.st.Muted.Render(strings.Join(filters, " "))
	}

	return head
}

func (m Model) renderList(now time.Time) string {
	visible := m.visible()
	if len(visible) == 0 {
		return m.st.Muted.Render("nothing here. press 'a' to add a task.") + "\n"
	}

	var b strings.Builder
	for i, t := range visible {
		cursor := "  "
		if i == m.cursor && m.mode == modeList {
			cursor = m.st.Cursor.Render("> ")
		}
		b.WriteString(cursor + m.renderTaskLine(t, now, true))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTaskLine(t task.Task, now time.Time, withDue bool) string {
	checkbox := "[ ] "
	text := t.Text
	if t.Completed {
		checkbox = "[x] "
		text = m.st.Done.Render(text)
	}

	line := checkbox + text

	switch t.Priority {
	case task.PriorityHigh:
		line += " " + m.st.Critical.Render("(high)")
	case task.PriorityLow:
		line += " " + m.st.Muted.Render("(low)")
	}

	if withDue && t.DueDate != nil {
		due := deadline.FormatDue(t.DueDate, now)
		switch {
		case t.Completed:
			line += " " + m.st.Muted.Render(due)
		case deadline.IsOverdue(t.DueDate, now):
			line += " " + m.st.Critical.Render(due+" (overdue)")
		case deadline.IsDueSoon(t.DueDate, now):
			line += " " + m.st.Warning.Render(due)
		default:
			line += " " + m.st.Muted.Render(due)
		}
	}

	return line
}

func (m Model) renderAlertsPanel() string {
	active := m.app.Scheduler.Active()
	if len(active) == 0 {
		return m.st.Panel.Render(m.st.Muted.Render("no active alerts")) + "\n"
	}

	lines := make([]string, 0, len(active))
	for _, a := range active {
		style := m.st.Warning
		if a.Tier == deadline.TierCritical {
			style = m.st.Critical
		}
		lines = append(lines, style.Render(a.TimeLeft)+" "+a.Task.Text)
	}

	return m.st.Panel.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderToast(a notify.Alert) string {
	style := m.st.Toast
	if a.Level == notify.LevelCritical {
		style = m.st.ToastCritical
	}
	return style.Render(a.Title + "\n" + a.Body)
}
