package export

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level classifies a user-facing notice.
type Level string

// Notice levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Messages shown to the user during a download.
const (
	MessagePreparing = "Preparing your resume for download..."
	MessageSuccess   = "Resume downloaded successfully!"
	MessageFailure   = "Failed to download resume. Please try again."
)

// Notice is a transient message for the user.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier receives notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// MultiNotifier forwards every notice to each notifier in order.
type MultiNotifier []Notifier

// Notify forwards n.
func (m MultiNotifier) Notify(n Notice) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// LogNotifier writes notices to a zap logger.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify logs n at a level matching its severity.
func (l LogNotifier) Notify(n Notice) {
	switch n.Level {
	case LevelError:
		l.Logger.Warn(n.Message, zap.String("notice", string(n.Level)))
	default:
		l.Logger.Info(n.Message, zap.String("notice", string(n.Level)))
	}
}

// subscriberBuffer is the number of notices a slow subscriber may lag behind.
const subscriberBuffer = 16

// Broker fans notices out to subscribers, e.g. server-sent event streams.
// A subscriber that falls behind loses notices instead of blocking others.
type Broker struct {
	mu     sync.Mutex
	subs   map[chan Notice]struct{}
	closed bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Notice]struct{})}
}

// Subscribe registers a subscriber. The returned function unsubscribes and
// closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Notice, func()) {
	ch := make(chan Notice, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

// Notify delivers n to every subscriber with room in its buffer.
func (b *Broker) Notify(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects every subscriber.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
