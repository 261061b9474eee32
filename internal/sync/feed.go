package sync

// Feed is a payload-less change signal. Writers call Notify; readers wait
// on C. Bursts of notifications collapse into one pending signal.
type Feed struct {
	ch chan struct{}
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{ch: make(chan struct{}, 1)}
}

// Notify records a change without blocking. It satisfies store.Notifier.
func (f *Feed) Notify() {
	select {
	case f.ch <- struct{}{}:
	default:
		// A signal is already pending.
	}
}

// C returns the channel that receives one value per pending change.
func (f *Feed) C() <-chan struct{} {
	return f.ch
}
