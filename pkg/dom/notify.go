package dom

import "sync"

// Notifier announces that the geometry of observed content may have changed.
//
// OnGeometryChange registers fn and returns a function that removes the
// subscription. Implementations may call fn from any goroutine; the core
// assumes callers serialize notifications with other rail operations.
type Notifier interface {
	OnGeometryChange(fn func()) (cancel func())
}

// Broadcaster is a synchronous Notifier. Notify invokes every subscriber in
// subscription order on the calling goroutine.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func()
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// OnGeometryChange implements Notifier.
func (b *Broadcaster) OnGeometryChange(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Notify invokes all current subscribers.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

// Len returns the number of active subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

var _ Notifier = (*Broadcaster)(nil)
