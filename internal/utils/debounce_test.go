package utils

import (
	"testing"
	"time"
)

func TestDebouncerOnlyNewestGenerationMatches(t *testing.T) {
	debouncer := NewDebouncer(50 * time.Millisecond)

	// three rapid triggers: only the last one should be live
	debouncer.Trigger()
	debouncer.Trigger()
	debouncer.Trigger()

	if debouncer.Match(DebounceMsg{Generation: 1}) {
		t.Error("Expected first generation to be stale")
	}
	if debouncer.Match(DebounceMsg{Generation: 2}) {
		t.Error("Expected second generation to be stale")
	}
	if !debouncer.Match(DebounceMsg{Generation: 3}) {
		t.Error("Expected third generation to match")
	}
}

func TestDebouncerNewTriggerInvalidatesPrevious(t *testing.T) {
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Trigger()
	live := DebounceMsg{Generation: 1}
	if !debouncer.Match(live) {
		t.Fatal("Expected the only generation to match")
	}

	debouncer.Trigger()
	if debouncer.Match(live) {
		t.Error("Expected an earlier generation to stop matching after a new trigger")
	}
}

func TestDebouncerDelay(t *testing.T) {
	debouncer := NewDebouncer(300 * time.Millisecond)
	if debouncer.Delay() != 300*time.Millisecond {
		t.Errorf("Expected 300ms delay, got %v", debouncer.Delay())
	}
}
