package utils

import (
	"time"
)

// Spinner renders a braille loading animation, advancing a frame each time
// View is called after the frame interval has passed.
type Spinner struct {
	frames []string
	index  int
	last   time.Time
	speed  time.Duration
}

func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		speed:  100 * time.Millisecond,
	}
}

// View returns the current frame of the spinner.
func (s *Spinner) View() string {
	now := time.Now()
	if now.Sub(s.last) >= s.speed {
		s.index = (s.index + 1) % len(s.frames)
		s.last = now
	}
	return s.frames[s.index]
}
