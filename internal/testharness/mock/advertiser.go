package mock

import (
	"sync"

	"github.com/beaconsense/beacon-go/pkg/broadcast"
)

// Advertiser is a simulated beacon advertiser.
type Advertiser struct {
	mu sync.Mutex

	autoConfirm bool
	failWith    error

	pending     []func(error)
	advertising bool
	last        broadcast.Config
}

// NewAdvertiser creates an advertiser. With autoConfirm, starts are
// confirmed immediately.
func NewAdvertiser(autoConfirm bool) *Advertiser {
	return &Advertiser{autoConfirm: autoConfirm}
}

// FailWith makes automatic confirmations fail with err.
func (a *Advertiser) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failWith = err
}

// StartAdvertising implements broadcast.Advertiser.
func (a *Advertiser) StartAdvertising(cfg broadcast.Config, onResult func(err error)) {
	a.mu.Lock()
	a.last = cfg
	if !a.autoConfirm {
		a.pending = append(a.pending, onResult)
		a.mu.Unlock()
		return
	}
	err := a.failWith
	a.advertising = err == nil
	a.mu.Unlock()

	onResult(err)
}

// Confirm settles the oldest pending start.
func (a *Advertiser) Confirm(err error) error {
	a.mu.Lock()
	if len(a.pending) == 0 {
		a.mu.Unlock()
		return ErrNothingPending
	}
	fn := a.pending[0]
	a.pending = a.pending[1:]
	a.advertising = err == nil
	a.mu.Unlock()

	fn(err)
	return nil
}

// StopAdvertising implements broadcast.Advertiser.
func (a *Advertiser) StopAdvertising() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.advertising = false
	return nil
}

// IsAdvertising implements broadcast.Advertiser.
func (a *Advertiser) IsAdvertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.advertising
}

// Last returns the config of the most recent start.
func (a *Advertiser) Last() broadcast.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Compile-time interface satisfaction check.
var _ broadcast.Advertiser = (*Advertiser)(nil)
