package utils

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebounceMsg fires after the debounce delay. Only the message whose
// generation matches the debouncer's current one is live; older generations
// were superseded by a later Trigger and must be ignored.
type DebounceMsg struct {
	Generation int
}

// Debouncer delays an effect until its input has been stable for a fixed
// interval. Each Trigger cancels the pending one by advancing the
// generation; stale ticks still arrive but fail Match.
type Debouncer struct {
	generation int
	delay      time.Duration
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger() tea.Cmd {
	d.generation++
	generation := d.generation

	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return DebounceMsg{Generation: generation}
	})
}

func (d *Debouncer) Match(msg DebounceMsg) bool {
	return msg.Generation == d.generation
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}
