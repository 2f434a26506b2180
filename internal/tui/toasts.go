package tui

import (
	"time"

	"github.com/colonyops/nag/internal/core/notify"
)

const (
	toastTTL  = 8 * time.Second
	maxToasts = 4
)

type toast struct {
	alert     notify.Alert
	remaining time.Duration
}

// ToastController manages the lifecycle of on-screen alert toasts: push,
// eviction, TTL countdown, and dismissal.
type ToastController struct {
	toasts []toast
}

func NewToastController() *ToastController {
	return &ToastController{}
}

// Push adds an alert to the toast stack, evicting the oldest past maxToasts.
func (c *ToastController) Push(a notify.Alert) {
	c.toasts = append(c.toasts, toast{alert: a, remaining: toastTTL})
	if len(c.toasts) > maxToasts {
		c.toasts = c.toasts[len(c.toasts)-maxToasts:]
	}
}

// Tick decrements the remaining TTL on all toasts by d and drops expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// DismissAll removes every toast.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

// HasToasts reports whether any toast is still alive.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the active toasts, oldest first.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}
