// Package notify broadcasts change events for submission mutations so other
// open views can refresh counts without polling.
package notify

import "sync"

// Notifier publishes a best-effort change event. The key identifies the
// changed submission ("activityID:studentID"); subscribers treat it as a hint
// and re-read from the store.
type Notifier interface {
	SubmissionChanged(key string)
}

// ListenerNotifier fans events out to registered callbacks in-process.
// Used in tests and in single-process deployments without Redis.
type ListenerNotifier struct {
	mu        sync.RWMutex
	listeners []func(key string)
}

func NewListenerNotifier() *ListenerNotifier {
	return &ListenerNotifier{}
}

func (n *ListenerNotifier) Subscribe(fn func(key string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

func (n *ListenerNotifier) SubmissionChanged(key string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.listeners {
		fn(key)
	}
}

var _ Notifier = (*ListenerNotifier)(nil)
