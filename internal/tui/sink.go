package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/nag/internal/core/notify"
)

// alertsMsg signals the Update loop that buffered alerts are ready to drain.
type alertsMsg struct{}

// AlertBuffer is the notify.Sink the TUI installs on the scheduler. Scans
// run on a background goroutine, so alerts are buffered here and handed to
// the single-threaded Update loop via a wake-up channel.
type AlertBuffer struct {
	mu      sync.Mutex
	pending []notify.Alert
	signal  chan struct{}
}

var _ notify.Sink = (*AlertBuffer)(nil)

func NewAlertBuffer() *AlertBuffer {
	return &AlertBuffer{
		signal: make(chan struct{}, 1),
	}
}

// Dispatch buffers the alert and wakes the UI. Always reports delivered;
// once buffered, the alert will be shown.
func (b *AlertBuffer) Dispatch(_ context.Context, a notify.Alert) bool {
	b.mu.Lock()
	b.pending = append(b.pending, a)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
	return true
}

// Drain returns and clears the buffered alerts.
func (b *AlertBuffer) Drain() []notify.Alert {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	b.pending = nil
	return out
}

// Wait blocks until Dispatch buffers something, then delivers one alertsMsg.
// Re-arm it from Update after every drain.
func (b *AlertBuffer) Wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return alertsMsg{}
	}
}
