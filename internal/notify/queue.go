package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Queue is a bounded outbound notification queue. Notify never blocks the
// calling mutation: the notification is buffered and delivered to the
// registered sinks by a background drain goroutine, so state always commits
// before its notification is observed. When the buffer is full the
// notification is dropped silently, matching the channel's "delivered or
// dropped, never blocking" contract.
type Queue struct {
	ch     chan Notification
	sinks  []Sink
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewQueue creates a queue with the given buffer size and starts the drain
// goroutine. Sinks registered here receive every drained notification in
// order.
func NewQueue(size int, logger *slog.Logger, sinks ...Sink) *Queue {
	if size < 1 {
		size = 64
	}
	q := &Queue{
		ch:     make(chan Notification, size),
		sinks:  sinks,
		logger: logger,
		done:   make(chan struct{}),
	}
	go q.drain()
	return q
}

// Notify enqueues a notification without blocking. The timestamp is stamped
// here so sinks see when the triggering mutation committed.
func (q *Queue) Notify(n Notification) {
	if n.Severity == "" {
		n.Severity = SeverityDefault
	}
	n.CreatedAt = time.Now().UTC()

	select {
	case q.ch <- n:
	default:
		q.logger.Warn("notification queue full, dropping",
			slog.String("kind", string(n.Kind)),
			slog.String("title", n.Title),
		)
	}
}

func (q *Queue) drain() {
	defer close(q.done)
	for n := range q.ch {
		for _, s := range q.sinks {
			s.Deliver(n)
		}
	}
}

// Close stops accepting notifications, delivers what is already buffered,
// and waits for the drain goroutine to finish.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.ch)
	})
	<-q.done
}
