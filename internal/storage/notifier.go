package storage

import "sync"

// Change topics published by the repositories.
const (
	TopicItems       = "items"
	TopicEssences    = "essences"
	TopicSearch      = "search"
	TopicPreferences = "preferences"
)

// Change describes a committed write. ID is empty for bulk changes.
type Change struct {
	Topic string `json:"topic"`
	Op    string `json:"op"`
	ID    string `json:"id,omitempty"`
}

// Notifier fans store changes out to subscribers. A nil *Notifier is valid
// and drops every event.
type Notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Change
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Change)}
}

// Subscribe registers a listener with the given buffer size. The returned
// cancel function unregisters it and closes the channel.
func (n *Notifier) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers c to every subscriber without blocking. Subscribers whose
// buffer is full miss the event.
func (n *Notifier) Publish(c Change) {
	if n == nil {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (n *Notifier) Subscribers() int {
	if n == nil {
		return 0
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
