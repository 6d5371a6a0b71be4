package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// DefaultDismissAfter is how long a notification stays visible before it is
// auto-dismissed.
const DefaultDismissAfter = 5 * time.Second

// Notification is an ephemeral toast message. Ordering is insertion order;
// nothing is persisted.
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

type Queue struct {
	mu           sync.Mutex
	items        []Notification
	dismissAfter time.Duration
}

func NewQueue() *Queue {
	return &Queue{dismissAfter: DefaultDismissAfter}
}

func NewQueueWithDismiss(dismissAfter time.Duration) *Queue {
	return &Queue{dismissAfter: dismissAfter}
}

func (q *Queue) Push(message string, severity Severity) Notification {
	notification := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.items = append(q.items, notification)
	q.mu.Unlock()

	return notification
}

func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// ExpireBefore removes every notification whose dismiss deadline falls
// before the given instant.
func (q *Queue) ExpireBefore(now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, item := range q.items {
		if item.CreatedAt.Add(q.dismissAfter).After(now) {
			kept = append(kept, item)
		}
	}
	q.items = kept
}

func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]Notification, len(q.items))
	copy(items, q.items)
	return items
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

func (q *Queue) DismissAfter() time.Duration {
	return q.dismissAfter
}
