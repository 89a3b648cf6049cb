// Package signal provides interrupt handling for the interactive session.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// InterruptHandler implements a double-press exit pattern for Ctrl+C.
// The first press fires the FirstPress channel without cancelling anything,
// so the shell can warn the user; a second press within the timeout cancels
// the handler's context. The conversation loop selects on that context at
// its suspension points, which guarantees an in-flight turn is abandoned
// rather than half-committed.
type InterruptHandler struct {
	timeout      time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	firstPressCh chan struct{}

	mu            sync.Mutex
	lastPressTime time.Time
	pressPending  bool
	running       bool
	resetTimer    *time.Timer
	sigCh         chan os.Signal
	stopCh        chan struct{}
}

// NewInterruptHandler creates a handler with the given double-press window.
func NewInterruptHandler(timeout time.Duration) *InterruptHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &InterruptHandler{
		timeout:      timeout,
		ctx:          ctx,
		cancel:       cancel,
		firstPressCh: make(chan struct{}, 1),
	}
}

// Start begins listening for SIGINT and SIGTERM. Safe to call once.
func (h *InterruptHandler) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return
	}

	h.running = true
	h.sigCh = make(chan os.Signal, 1)
	h.stopCh = make(chan struct{})

	signal.Notify(h.sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-h.stopCh:
				return
			case <-h.sigCh:
				h.handleInterrupt()
			}
		}
	}()
}

func (h *InterruptHandler) handleInterrupt() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return
	}

	now := time.Now()
	if h.pressPending && now.Sub(h.lastPressTime) < h.timeout {
		h.cancel()
		h.pressPending = false
		h.stopResetTimer()
		return
	}

	h.pressPending = true
	h.lastPressTime = now

	select {
	case h.firstPressCh <- struct{}{}:
	default:
		// previous signal not consumed yet
	}

	h.stopResetTimer()
	h.resetTimer = time.AfterFunc(h.timeout, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.pressPending = false
	})
}

// stopResetTimer stops and clears the reset timer. Caller must hold h.mu.
func (h *InterruptHandler) stopResetTimer() {
	if h.resetTimer != nil {
		h.resetTimer.Stop()
		h.resetTimer = nil
	}
}

// Stop stops listening for signals. Safe to call multiple times.
func (h *InterruptHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return
	}

	h.running = false
	if h.sigCh != nil {
		signal.Stop(h.sigCh)
		close(h.sigCh)
		h.sigCh = nil
	}
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	h.stopResetTimer()
}

// Context returns a context cancelled when the user confirms exit with a
// second Ctrl+C inside the timeout window.
func (h *InterruptHandler) Context() context.Context {
	return h.ctx
}

// FirstPress returns the channel fired on the first Ctrl+C, so the shell can
// display a "press again to exit" hint.
func (h *InterruptHandler) FirstPress() <-chan struct{} {
	return h.firstPressCh
}

// SimulateInterrupt injects an interrupt as if SIGINT had been received.
// Intended for tests.
func (h *InterruptHandler) SimulateInterrupt() {
	h.handleInterrupt()
}
