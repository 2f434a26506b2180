package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/nag/internal/core/notify"
)

func TestToastController(t *testing.T) {
	t.Run("push and expire", func(t *testing.T) {
		c := NewToastController()
		c.Push(notify.Alert{Title: "one"})
		require.True(t, c.HasToasts())

		c.Tick(toastTTL / 2)
		assert.Len(t, c.Toasts(), 1)

		c.Tick(toastTTL)
		assert.False(t, c.HasToasts())
	})

	t.Run("evicts oldest past the cap", func(t *testing.T) {
		c := NewToastController()
		for i := 0; i < maxToasts+2; i++ {
			c.Push(notify.Alert{TaskID: string(rune('a' + i))})
		}

		toasts := c.Toasts()
		require.Len(t, toasts, maxToasts)
		assert.Equal(t, "c", toasts[0].alert.TaskID)
	})

	t.Run("dismiss newest, then all", func(t *testing.T) {
		c := NewToastController()
		c.Push(notify.Alert{Title: "one"})
		c.Push(notify.Alert{Title: "two"})

		c.Dismiss()
		require.Len(t, c.Toasts(), 1)
		assert.Equal(t, "one", c.Toasts()[0].alert.Title)

		c.DismissAll()
		assert.False(t, c.HasToasts())
	})
}

func TestAlertBuffer(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatch buffers and signals once", func(t *testing.T) {
		b := NewAlertBuffer()

		assert.True(t, b.Dispatch(ctx, notify.Alert{Title: "one"}))
		assert.True(t, b.Dispatch(ctx, notify.Alert{Title: "two"}))

		// One coalesced wake-up is enough to drain both.
		select {
		case <-b.signal:
		case <-time.After(time.Second):
			t.Fatal("no wake-up signal")
		}

		drained := b.Drain()
		require.Len(t, drained, 2)
		assert.Equal(t, "one", drained[0].Title)
		assert.Empty(t, b.Drain())
	})
}
