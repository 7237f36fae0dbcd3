package realtime

import (
	"context"
	"sync"
	"time"

	"comanda/internal/models"

	"github.com/gorilla/websocket"
)

// State is the watcher's transport state.
type State int

const (
	// StateConnecting means a change-event subscription is being set up.
	StateConnecting State = iota
	// StateConnected means changes arrive as events, with the poll
	// interval as a safety net.
	StateConnected
	// StateFallbackPolling means the subscription could not be
	// established or dropped; the fixed interval drives all refreshes.
	StateFallbackPolling
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFallbackPolling:
		return "fallback-polling"
	default:
		return "unknown"
	}
}

// FetchFunc loads the current role-scoped order set.
type FetchFunc func(ctx context.Context) ([]models.Order, error)

// SubscribeFunc establishes a change-event subscription. The returned
// channel ticks on every relevant server-side write and closes when the
// subscription drops.
type SubscribeFunc func(ctx context.Context) (<-chan struct{}, error)

// WatcherConfig wires a Watcher. Subscribe is optional; without it the
// watcher is a plain poller.
type WatcherConfig struct {
	Fetch            FetchFunc
	Subscribe        SubscribeFunc
	PollInterval     time.Duration
	ResubscribeAfter time.Duration
	OnUpdate         func([]models.Order)
	OnStateChange    func(State)
	OnError          func(error)
}

// Watcher keeps one station view consistent with server state. A single
// goroutine owns all fetching, so at most one request is ever in flight;
// applies are gated by the content signature, so a same-content refresh
// is a no-op for the consumer.
type Watcher struct {
	cfg WatcherConfig

	mu      sync.Mutex
	state   State
	lastSig string
	applied bool
}

// NewWatcher creates a watcher; Run starts it.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.ResubscribeAfter <= 0 {
		cfg.ResubscribeAfter = time.Minute
	}
	return &Watcher{cfg: cfg, state: StateConnecting}
}

// State returns the current transport state.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Run blocks until the context is cancelled. It refreshes once
// immediately, then follows subscription events when available and the
// poll interval otherwise.
func (w *Watcher) Run(ctx context.Context) error {
	w.refresh(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if w.cfg.Subscribe == nil {
			w.setState(StateFallbackPolling)
			return w.pollUntil(ctx, nil)
		}

		w.setState(StateConnecting)
		events, err := w.cfg.Subscribe(ctx)
		if err != nil {
			w.reportError(err)
			w.setState(StateFallbackPolling)
			deadline := time.After(w.cfg.ResubscribeAfter)
			if err := w.pollUntil(ctx, deadline); err != nil {
				return err
			}
			continue
		}

		w.setState(StateConnected)
		if err := w.followEvents(ctx, events); err != nil {
			return err
		}
		// subscription dropped; loop re-subscribes
	}
}

// followEvents refreshes on every event, keeping the poll interval as a
// baseline. Returns nil when the event channel closes.
func (w *Watcher) followEvents(ctx context.Context, events <-chan struct{}) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return nil
			}
			w.refresh(ctx)
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// pollUntil polls at the fixed interval until the deadline channel fires
// (nil means never) or the context is cancelled.
func (w *Watcher) pollUntil(ctx context.Context, deadline <-chan time.Time) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return nil
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// refresh fetches once and applies the result if its signature changed.
func (w *Watcher) refresh(ctx context.Context) {
	orders, err := w.cfg.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.reportError(err)
		}
		return
	}

	sig := Signature(orders)
	w.mu.Lock()
	changed := !w.applied || sig != w.lastSig
	w.lastSig = sig
	w.applied = true
	w.mu.Unlock()

	if changed && w.cfg.OnUpdate != nil {
		w.cfg.OnUpdate(orders)
	}
}

func (w *Watcher) setState(next State) {
	w.mu.Lock()
	changed := w.state != next
	w.state = next
	w.mu.Unlock()
	if changed && w.cfg.OnStateChange != nil {
		w.cfg.OnStateChange(next)
	}
}

func (w *Watcher) reportError(err error) {
	if w.cfg.OnError != nil {
		w.cfg.OnError(err)
	}
}

// SubscribeWS dials the server's change-event endpoint and converts
// received events into notification ticks. The channel closes when the
// connection drops or the context is cancelled.
func SubscribeWS(ctx context.Context, url string) (<-chan struct{}, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			// connection already gone; don't outlive it
		}
	}()
	go func() {
		defer close(ch)
		defer close(done)
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			select {
			case ch <- struct{}{}:
			default:
				// a tick is already pending; one refresh covers both
			}
		}
	}()
	return ch, nil
}
