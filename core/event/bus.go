package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultBufferSize is the per-subscriber channel buffer.
const DefaultBufferSize = 16

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event: bus closed")

// Bus fans signals out to subscribers. Delivery is non-blocking: a
// subscriber whose buffer is full misses the signal instead of stalling the
// publisher or other subscribers. Signals are pure triggers, so a dropped
// one is recovered by the next poll cycle.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]chan Signal
	buffer int
	logger *slog.Logger
	closed bool
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithBufferSize sets the per-subscriber buffer size.
func WithBufferSize(size int) BusOption {
	return func(b *Bus) {
		if size > 0 {
			b.buffer = size
		}
	}
}

// WithLogger configures structured logging for dropped deliveries.
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBus creates an in-process signal bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subs:   make(map[uuid.UUID]chan Signal),
		buffer: DefaultBufferSize,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscription is one subscriber's view of the bus.
type Subscription struct {
	id  uuid.UUID
	ch  chan Signal
	bus *Bus
}

// Signals returns the channel delivering signals for this subscription.
// The channel is closed when the subscription or the bus closes.
func (s *Subscription) Signals() <-chan Signal {
	return s.ch
}

// Close detaches the subscription from the bus.
func (s *Subscription) Close() {
	s.bus.unsubscribe(s.id)
}

// Subscribe attaches a new subscriber. The subscription detaches itself when
// ctx is canceled; callers owning no context may pass context.Background and
// call Close explicitly.
func (b *Bus) Subscribe(ctx context.Context) *Subscription {
	sub := &Subscription{
		id:  uuid.New(),
		ch:  make(chan Signal, b.buffer),
		bus: b,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub
	}
	b.subs[sub.id] = sub.ch
	b.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			b.unsubscribe(sub.id)
		}()
	}
	return sub
}

// Publish delivers a signal to every subscriber without blocking.
func (b *Bus) Publish(sig Signal) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}
	for id, ch := range b.subs {
		select {
		case ch <- sig:
		default:
			b.logger.Debug("signal dropped for slow subscriber",
				slog.String("signal", string(sig.Type)),
				slog.String("subscriber", id.String()))
		}
	}
	return nil
}

// Close tears down the bus and every live subscription. Publishing after
// Close returns ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

func (b *Bus) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
	}
}
