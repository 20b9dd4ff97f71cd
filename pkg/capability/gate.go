package capability

import (
	"log/slog"
	"sync"
	"time"
)

// Outcome describes how a prompt was settled.
type Outcome uint8

const (
	// OutcomeIssued is reported when a prompt is shown.
	OutcomeIssued Outcome = iota

	// OutcomeAnswered is reported when the requester called back.
	OutcomeAnswered

	// OutcomeSuperseded is reported when its owner asked again and the
	// dialog was shown anew.
	OutcomeSuperseded

	// OutcomeJoined is reported when another owner shares a prompt that is
	// already showing.
	OutcomeJoined

	// OutcomeTimedOut is reported when the prompt timeout elapsed first.
	OutcomeTimedOut

	// OutcomeAbandoned is reported when the gate was reset with the prompt outstanding.
	OutcomeAbandoned
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIssued:
		return "ISSUED"
	case OutcomeAnswered:
		return "ANSWERED"
	case OutcomeSuperseded:
		return "SUPERSEDED"
	case OutcomeJoined:
		return "JOINED"
	case OutcomeTimedOut:
		return "TIMED_OUT"
	case OutcomeAbandoned:
		return "ABANDONED"
	default:
		return "UNKNOWN"
	}
}

// PromptEvent reports a prompt transition to observers of the gate.
type PromptEvent struct {
	ID      uint64
	Prompt  Prompt
	Outcome Outcome
	Value   bool
}

// GateConfig configures a Gate.
type GateConfig struct {
	// Timeout bounds how long a prompt may stay unanswered. When it elapses
	// the prompt is answered negatively. Zero waits indefinitely.
	Timeout time.Duration

	// Logger is the optional logger for debug output.
	Logger *slog.Logger
}

type waiter struct {
	owner string
	fn    func(bool)
}

type prompt struct {
	id      uint64
	kind    Prompt
	waiters []waiter
	timer   *time.Timer
	settled bool
}

func (p *prompt) ownedBy(owner string) bool {
	for _, w := range p.waiters {
		if w.owner == owner {
			return true
		}
	}
	return false
}

// Gate serializes prompts per kind on top of a Requester.
//
// At most one prompt of each kind is shown. Every request names an owner.
// A request from an owner without a stake in the outstanding prompt joins
// it, and the one answer goes to every waiter. A request from an owner that
// is already waiting supersedes the prompt: the dialog is shown again, the
// owner's earlier callbacks are answered false and other owners move to the
// new dialog. Location settings navigation has no completion, so it is
// never outstanding.
type Gate struct {
	mu sync.Mutex

	requester Requester
	timeout   time.Duration
	logger    *slog.Logger

	outstanding map[Prompt]*prompt
	nextID      uint64

	onPrompt func(PromptEvent)
}

// NewGate creates a gate in front of requester.
func NewGate(requester Requester, cfg GateConfig) *Gate {
	return &Gate{
		requester:   requester,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
		outstanding: make(map[Prompt]*prompt),
	}
}

// OnPrompt sets a callback for prompt transitions.
func (g *Gate) OnPrompt(fn func(PromptEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onPrompt = fn
}

// RequestLocationPermission shows the permission dialog on behalf of the
// anonymous owner.
func (g *Gate) RequestLocationPermission(onResult func(granted bool)) {
	g.Request(PromptLocationPermission, "", onResult)
}

// RequestRadioPowerOn shows the enable-radio prompt on behalf of the
// anonymous owner.
func (g *Gate) RequestRadioPowerOn(onResult func(accepted bool)) {
	g.Request(PromptRadioPower, "", onResult)
}

// Request shows the dialog of kind for owner, or joins the one already
// showing. Location settings have no answer; use OpenLocationSettings.
func (g *Gate) Request(kind Prompt, owner string, onResult func(bool)) {
	p, issued := g.open(kind, owner, onResult)
	if !issued {
		return
	}
	answer := func(v bool) { g.settle(p, v, OutcomeAnswered) }
	switch kind {
	case PromptLocationPermission:
		g.requester.RequestLocationPermission(answer)
	case PromptRadioPower:
		g.requester.RequestRadioPowerOn(answer)
	}
}

// OpenLocationSettings navigates to the location settings screen.
func (g *Gate) OpenLocationSettings() {
	g.mu.Lock()
	g.nextID++
	id := g.nextID
	fn := g.onPrompt
	g.mu.Unlock()

	g.debug("prompt issued", "prompt", PromptLocationSettings.String(), "id", id)
	if fn != nil {
		fn(PromptEvent{ID: id, Prompt: PromptLocationSettings, Outcome: OutcomeIssued})
	}
	g.requester.OpenLocationSettings()
}

// Outstanding reports whether a prompt of the given kind awaits an answer.
func (g *Gate) Outstanding(kind Prompt) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.outstanding[kind]
	return ok
}

// Abandon drops every outstanding prompt without answering it. Answers that
// arrive afterwards are ignored.
func (g *Gate) Abandon() {
	g.mu.Lock()
	var dropped []*prompt
	for kind, p := range g.outstanding {
		p.settled = true
		p.waiters = nil
		if p.timer != nil {
			p.timer.Stop()
		}
		dropped = append(dropped, p)
		delete(g.outstanding, kind)
	}
	fn := g.onPrompt
	g.mu.Unlock()

	for _, p := range dropped {
		g.debug("prompt abandoned", "prompt", p.kind.String(), "id", p.id)
		if fn != nil {
			fn(PromptEvent{ID: p.id, Prompt: p.kind, Outcome: OutcomeAbandoned})
		}
	}
}

// open registers onResult for owner. It reports whether a dialog has to be
// shown; false means onResult joined the outstanding prompt.
func (g *Gate) open(kind Prompt, owner string, onResult func(bool)) (*prompt, bool) {
	w := waiter{owner: owner, fn: onResult}

	g.mu.Lock()
	fn := g.onPrompt
	prev := g.outstanding[kind]
	if prev != nil && !prev.ownedBy(owner) {
		prev.waiters = append(prev.waiters, w)
		g.mu.Unlock()

		g.debug("prompt joined", "prompt", kind.String(), "id", prev.id, "owner", owner)
		if fn != nil {
			fn(PromptEvent{ID: prev.id, Prompt: kind, Outcome: OutcomeJoined})
		}
		return prev, false
	}

	g.nextID++
	p := &prompt{id: g.nextID, kind: kind}
	var superseded []func(bool)
	if prev != nil {
		prev.settled = true
		if prev.timer != nil {
			prev.timer.Stop()
		}
		for _, pw := range prev.waiters {
			if pw.owner == owner {
				superseded = append(superseded, pw.fn)
			} else {
				p.waiters = append(p.waiters, pw)
			}
		}
		prev.waiters = nil
	}
	p.waiters = append(p.waiters, w)
	g.outstanding[kind] = p
	if g.timeout > 0 {
		p.timer = time.AfterFunc(g.timeout, func() {
			g.settle(p, false, OutcomeTimedOut)
		})
	}
	g.mu.Unlock()

	if prev != nil {
		g.debug("prompt superseded", "prompt", kind.String(), "id", prev.id, "by", p.id)
		if fn != nil {
			fn(PromptEvent{ID: prev.id, Prompt: kind, Outcome: OutcomeSuperseded})
		}
		for _, f := range superseded {
			if f != nil {
				f(false)
			}
		}
	}

	g.debug("prompt issued", "prompt", kind.String(), "id", p.id)
	if fn != nil {
		fn(PromptEvent{ID: p.id, Prompt: kind, Outcome: OutcomeIssued})
	}
	return p, true
}

// settle answers a prompt once; later calls for the same prompt are no-ops.
func (g *Gate) settle(p *prompt, value bool, outcome Outcome) {
	g.mu.Lock()
	if p.settled {
		g.mu.Unlock()
		g.debug("late prompt answer dropped", "prompt", p.kind.String(), "id", p.id)
		return
	}
	p.settled = true
	if p.timer != nil {
		p.timer.Stop()
	}
	if g.outstanding[p.kind] == p {
		delete(g.outstanding, p.kind)
	}
	waiters := p.waiters
	p.waiters = nil
	fn := g.onPrompt
	g.mu.Unlock()

	g.debug("prompt settled", "prompt", p.kind.String(), "id", p.id,
		"outcome", outcome.String(), "value", value, "waiters", len(waiters))
	if fn != nil {
		fn(PromptEvent{ID: p.id, Prompt: p.kind, Outcome: outcome, Value: value})
	}
	for _, w := range waiters {
		if w.fn != nil {
			w.fn(value)
		}
	}
}

func (g *Gate) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

// Compile-time interface satisfaction check.
var _ Requester = (*Gate)(nil)
