package broadcast

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/pending"
)

// Broadcaster errors.
var (
	ErrUnsupported = errors.New("broadcasting not supported on this device")
	ErrAdvertise   = errors.New("advertising failed")
	ErrStopped     = errors.New("broadcast stopped before it started")
)

// Advertiser emits the beacon advertisement. StartAdvertising reports the
// outcome exactly once through onResult, possibly on another goroutine.
type Advertiser interface {
	StartAdvertising(cfg Config, onResult func(err error))
	StopAdvertising() error
	IsAdvertising() bool
}

// Options configures a Broadcaster.
type Options struct {
	Logger      *slog.Logger
	EventLogger log.Logger
	SessionID   string
}

// Broadcaster starts and stops advertising.
type Broadcaster struct {
	mu sync.Mutex

	advertiser Advertiser
	probe      capability.Probe
	slot       *pending.Slot

	current *Config

	logger      *slog.Logger
	eventLogger log.Logger
	sessionID   string
}

// New creates a broadcaster.
func New(advertiser Advertiser, probe capability.Probe, opts Options) *Broadcaster {
	return &Broadcaster{
		advertiser:  advertiser,
		probe:       probe,
		slot:        pending.NewSlot(pending.ClassBroadcast),
		logger:      opts.Logger,
		eventLogger: opts.EventLogger,
		sessionID:   opts.SessionID,
	}
}

// Supported reports whether the device can advertise.
func (b *Broadcaster) Supported() bool {
	return b.probe.IsBroadcastCapable()
}

// Start begins advertising cfg. The returned request resolves true once the
// advertiser confirms. A start issued while another is unconfirmed
// supersedes it.
func (b *Broadcaster) Start(cfg Config) *pending.Request {
	if err := cfg.Validate(); err != nil {
		return pending.Failed(pending.ClassBroadcast, "startBroadcast", err)
	}
	if !b.Supported() {
		return pending.Failed(pending.ClassBroadcast, "startBroadcast", ErrUnsupported)
	}

	req := pending.New(pending.ClassBroadcast, "startBroadcast")
	b.slot.Put(req)

	b.advertiser.StartAdvertising(cfg, func(err error) {
		if err != nil {
			if b.slot.Fail(req, fmt.Errorf("%w: %v", ErrAdvertise, err)) && b.logger != nil {
				b.logger.Warn("advertising failed", "err", err)
			}
			return
		}
		// Only the live request records the config.
		if !b.slot.Is(req) {
			return
		}
		b.mu.Lock()
		c := cfg
		b.current = &c
		b.mu.Unlock()
		if b.slot.Resolve(req, true) {
			b.logAdvertising("ADVERTISING", cfg.ProximityUUID.String())
		}
	})
	return req
}

// Stop ends advertising. An unconfirmed start fails with ErrStopped.
// Stopping while idle is a no-op.
func (b *Broadcaster) Stop() error {
	b.slot.FailCurrent(ErrStopped)

	b.mu.Lock()
	was := b.current != nil
	b.current = nil
	b.mu.Unlock()

	if !was && !b.advertiser.IsAdvertising() {
		return nil
	}
	if err := b.advertiser.StopAdvertising(); err != nil {
		return fmt.Errorf("%w: %v", ErrAdvertise, err)
	}
	b.logAdvertising("IDLE", "")
	return nil
}

// Abandon fails an unconfirmed start with err and returns it. A confirmation
// that arrives afterwards is ignored.
func (b *Broadcaster) Abandon(err error) *pending.Request {
	req := b.slot.FailCurrent(err)
	if req != nil && b.logger != nil {
		b.logger.Debug("broadcast start abandoned", "request_id", req.ID(), "err", err)
	}
	return req
}

// IsBroadcasting reports whether the advertiser is currently advertising.
func (b *Broadcaster) IsBroadcasting() bool {
	return b.advertiser.IsAdvertising()
}

// Current returns the config being advertised, if any.
func (b *Broadcaster) Current() (Config, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Config{}, false
	}
	return *b.current, true
}

func (b *Broadcaster) logAdvertising(state, reason string) {
	if b.logger != nil {
		b.logger.Debug("advertising state", "state", state)
	}
	if b.eventLogger == nil {
		return
	}
	b.eventLogger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: b.sessionID,
		Category:  log.CategoryEngine,
		Engine:    &log.EngineEvent{Action: log.EngineAdvertising, NewState: state, Reason: reason},
	})
}
