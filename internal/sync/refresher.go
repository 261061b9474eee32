package sync

import (
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Reason says what triggered a refresh.
type Reason int

const (
	ReasonChanged Reason = iota
	ReasonInterval
	ReasonManual
)

func (r Reason) String() string {
	switch r {
	case ReasonChanged:
		return "changed"
	case ReasonInterval:
		return "interval"
	default:
		return "manual"
	}
}

// ChangedMsg is a tea.Msg telling the UI to re-run its queries.
type ChangedMsg struct {
	Reason Reason
	At     time.Time
}

// Refresher turns feed signals, a fallback ticker and manual requests into
// ChangedMsg values for the Bubble Tea runtime.
type Refresher struct {
	feed     *Feed
	interval time.Duration
	logger   *slog.Logger

	resultCh  chan ChangedMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	last    time.Time
}

// NewRefresher creates a refresher over feed. An interval <= 0 disables
// the fallback ticker.
func NewRefresher(feed *Feed, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		feed:      feed,
		interval:  interval,
		logger:    logger,
		resultCh:  make(chan ChangedMsg, 1),
		triggerCh: make(chan struct{}, 1),
	}
}

// Start launches the background loop and returns a command delivering the
// first ChangedMsg. Calling Start while running returns nil; a stopped
// refresher can be started again.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stop := r.stopCh
	r.mu.Unlock()

	go r.loop(stop)

	return r.waitForChange()
}

// Stop halts the background loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Refresh requests an immediate ChangedMsg.
func (r *Refresher) Refresh() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

// LastChange returns when the last ChangedMsg was emitted.
func (r *Refresher) LastChange() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Refresher) loop(stop <-chan struct{}) {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var feedCh <-chan struct{}
	if r.feed != nil {
		feedCh = r.feed.C()
	}

	for {
		select {
		case <-stop:
			return
		case <-feedCh:
			r.emit(ReasonChanged)
		case <-tick:
			r.emit(ReasonInterval)
		case <-r.triggerCh:
			r.emit(ReasonManual)
		}
	}
}

// emit sends a ChangedMsg, replacing nothing if one is already queued.
func (r *Refresher) emit(reason Reason) {
	now := time.Now()
	r.mu.Lock()
	r.last = now
	r.mu.Unlock()

	select {
	case r.resultCh <- ChangedMsg{Reason: reason, At: now}:
		r.logger.Debug("refresh queued", "reason", reason)
	default:
		// The pending message already causes a full re-fetch.
	}
}

func (r *Refresher) waitForChange() tea.Cmd {
	r.mu.Lock()
	stop := r.stopCh
	r.mu.Unlock()

	if stop == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg := <-r.resultCh:
			return msg
		case <-stop:
			return nil
		}
	}
}

// WaitForNextChange returns a tea.Cmd that waits for the next ChangedMsg.
// Call it after handling each ChangedMsg to keep listening.
func (r *Refresher) WaitForNextChange() tea.Cmd {
	return r.waitForChange()
}
