// Package interactive provides the interactive command-line interface for
// the beacon simulator.
package interactive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/beaconsense/beacon-go/internal/testharness/mock"
	"github.com/beaconsense/beacon-go/pkg/bridge"
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// ErrSimulatedBindFailure is reported by "bind fail".
var ErrSimulatedBindFailure = errors.New("simulated bind failure")

// ErrSimulatedAdvertiseFailure is reported by "confirm fail".
var ErrSimulatedAdvertiseFailure = errors.New("simulated advertise failure")

// Env holds the simulated components driven by the command loop.
type Env struct {
	Orchestrator *orchestrator.Orchestrator
	Dispatcher   *bridge.Dispatcher
	Handset      *mock.Handset
	Engine       *mock.Engine
	Advertiser   *mock.Advertiser

	// Regions are the named regions for range and monitor.
	Regions []region.Region
}

// Sim handles interactive mode for beacon-sim.
type Sim struct {
	env Env
	rl  *readline.Instance
	out io.Writer

	mu   sync.Mutex
	subs map[string]*eventhub.Subscription
}

// New creates a simulator console reading commands with readline.
func New(env Env) (*Sim, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newSim(env, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newSim(env Env, out io.Writer) *Sim {
	s := &Sim{
		env:  env,
		out:  out,
		subs: make(map[string]*eventhub.Subscription),
	}
	env.Handset.SetHandlers(mock.HandsetHandlers{
		OnPrompt: func(p capability.Prompt) {
			fmt.Fprintf(s.out, "[PROMPT] %s shown (answer with %s)\n", p, answerHint(p))
		},
		OnRadioChange: env.Orchestrator.NotifyRadioState,
	})
	return s
}

func answerHint(p capability.Prompt) string {
	if p == capability.PromptRadioPower {
		return "accept/reject"
	}
	return "grant/deny/dismiss"
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Sim) Stdout() io.Writer {
	return s.out
}

// Stderr returns a writer for log output that keeps the prompt intact.
func (s *Sim) Stderr() io.Writer {
	if s.rl != nil {
		return s.rl.Stderr()
	}
	return s.out
}

// Run starts the interactive command loop.
func (s *Sim) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	defer s.cancelAll()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Exec(line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the line asks to quit.
func (s *Sim) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "status", "s":
		s.cmdStatus()

	case "grant", "deny":
		s.report(s.env.Handset.AnswerPermission(cmd == "grant"))

	case "dismiss":
		s.report(s.env.Handset.DismissPermission())

	case "accept", "reject":
		s.report(s.env.Handset.AnswerRadio(cmd == "accept"))

	case "set":
		s.cmdSet(args)

	case "bind":
		s.cmdBind(args)

	case "disconnect":
		s.env.Engine.Disconnect()
		fmt.Fprintln(s.out, "Engine service disconnected")

	case "confirm":
		s.cmdConfirm(args)

	case "range":
		s.cmdWatch(eventhub.ChannelRanging, args)

	case "monitor":
		s.cmdWatch(eventhub.ChannelMonitoring, args)

	case "beacons", "b":
		s.cmdBeacons(args)

	case "enter", "exit-region", "state":
		s.cmdTransition(cmd, args)

	case "call", "c":
		s.cmdCall(args)

	case "resume":
		s.env.Orchestrator.Resume()

	case "attach":
		s.report(s.env.Orchestrator.Attach(orchestrator.Host{Probe: s.env.Handset, Requester: s.env.Handset}))

	case "detach":
		s.env.Orchestrator.Detach()
		fmt.Fprintln(s.out, "Host detached")

	case "prompts":
		s.cmdPrompts()

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Sim) printHelp() {
	fmt.Fprintln(s.out, `
Beacon Simulator Commands:
  Prompts:
    grant | deny             - Answer the oldest permission prompt
    dismiss                  - Dismiss the permission prompt without an answer
    accept | reject          - Answer the oldest radio power prompt
    prompts                  - Show prompt history

  Handset:
    set permission on|off    - Change the location permission
    set location on|off      - Change system location services
    set radio on|off|absent  - Change the radio power state
    set broadcast on|off     - Change broadcast capability
    attach | detach          - Attach or detach the host

  Engine:
    bind ok|fail             - Complete the oldest pending bind
    disconnect               - Simulate the engine service going away
    confirm [fail]           - Confirm the oldest advertising start
    range <region>|stop      - Subscribe to ranging for a configured region
    monitor <region>|stop    - Subscribe to monitoring for a configured region
    beacons <region> [n] [rssi]
                             - Report n beacons for a ranged region
    enter <region>           - Report entering a monitored region
    exit-region <region>     - Report leaving a monitored region
    state <region> inside|outside|unknown
                             - Report a determined region state

  Commands:
    call <method> [json]     - Call a bridge method, e.g. call initializeAndCheck
    resume                   - Re-check an outstanding request
    status                   - Show session status

  General:
    help                     - Show this help
    quit                     - Exit simulator`)
}

func (s *Sim) report(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Sim) cmdStatus() {
	o := s.env.Orchestrator
	st := s.env.Handset.State()

	fmt.Fprintf(s.out, "Session:          %s\n", o.SessionID())
	fmt.Fprintf(s.out, "Attached:         %t\n", o.Attached())
	fmt.Fprintf(s.out, "Bound:            %t (pending binds: %d)\n", o.Bound(), s.env.Engine.PendingBinds())
	fmt.Fprintf(s.out, "Permission:       %t\n", st.Permission)
	fmt.Fprintf(s.out, "Location service: %t\n", st.LocationService)
	fmt.Fprintf(s.out, "Radio:            %s\n", bridge.RadioStateName(st.Radio))
	fmt.Fprintf(s.out, "Broadcast:        capable=%t advertising=%t\n", st.BroadcastCapable, s.env.Advertiser.IsAdvertising())
	fmt.Fprintf(s.out, "Pending prompts:  permission=%d radio=%d\n",
		s.env.Handset.Pending(capability.PromptLocationPermission), s.env.Handset.Pending(capability.PromptRadioPower))

	p := o.Lifecycle().ScanPeriods()
	fmt.Fprintf(s.out, "Scan periods:     %s / %s\n", p.Foreground, p.ForegroundBetween)
	fmt.Fprintf(s.out, "Ranging:          %s\n", joinIDs(o.Lifecycle().RangingRegions()))
	fmt.Fprintf(s.out, "Monitoring:       %s\n", joinIDs(o.Lifecycle().MonitoredRegions()))
}

func joinIDs(regions []region.Region) string {
	if len(regions) == 0 {
		return "-"
	}
	ids := make([]string, len(regions))
	for i, r := range regions {
		ids[i] = r.Identifier
	}
	sort.Strings(ids)
	return strings.Join(ids, ", ")
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func (s *Sim) cmdSet(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: set <permission|location|radio|broadcast> <value>")
		return
	}
	h := s.env.Handset

	if args[0] == "radio" {
		switch strings.ToLower(args[1]) {
		case "on":
			h.SetRadio(capability.RadioOn)
		case "off":
			h.SetRadio(capability.RadioOff)
		case "absent":
			h.SetRadio(capability.RadioUnsupported)
		default:
			fmt.Fprintf(s.out, "Error: unknown radio state %q (use: on, off, absent)\n", args[1])
		}
		return
	}

	on, err := parseOnOff(args[1])
	if err != nil {
		s.report(err)
		return
	}
	switch args[0] {
	case "permission":
		h.SetPermission(on)
	case "location":
		h.SetLocationService(on)
	case "broadcast":
		h.SetBroadcastCapable(on)
	default:
		fmt.Fprintf(s.out, "Error: unknown setting %q\n", args[0])
	}
}

func (s *Sim) cmdBind(args []string) {
	var err error
	if len(args) > 0 && args[0] == "fail" {
		err = ErrSimulatedBindFailure
	}
	s.report(s.env.Engine.CompleteBind(err))
}

func (s *Sim) cmdConfirm(args []string) {
	var err error
	if len(args) > 0 && args[0] == "fail" {
		err = ErrSimulatedAdvertiseFailure
	}
	s.report(s.env.Advertiser.Confirm(err))
}

func (s *Sim) lookupRegion(id string) (region.Region, bool) {
	for _, r := range s.env.Regions {
		if r.Identifier == id {
			return r, true
		}
	}
	return region.Region{}, false
}

// cmdWatch subscribes the console to the ranging or monitoring stream. A
// new subscription replaces the previous one for the stream.
func (s *Sim) cmdWatch(stream string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "Usage: %s <region>|stop\n", commandFor(stream))
		return
	}

	s.mu.Lock()
	prev := s.subs[stream]
	delete(s.subs, stream)
	s.mu.Unlock()
	if prev != nil {
		prev.Cancel()
	}
	if args[0] == "stop" {
		fmt.Fprintf(s.out, "Stopped %s\n", stream)
		return
	}

	r, ok := s.lookupRegion(args[0])
	if !ok {
		// Unknown names watch a wildcard region.
		r = region.New(args[0])
	}
	sub, err := s.env.Dispatcher.Subscribe(stream, map[string]any{
		"regions": []any{r.ToMap()},
	}, s.printEvent)
	if err != nil {
		s.report(err)
		return
	}

	s.mu.Lock()
	s.subs[stream] = sub
	s.mu.Unlock()
	fmt.Fprintf(s.out, "Subscribed to %s for %s\n", stream, r)
}

func commandFor(stream string) string {
	if stream == eventhub.ChannelMonitoring {
		return "monitor"
	}
	return "range"
}

func (s *Sim) cancelAll() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[string]*eventhub.Subscription)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
}

func (s *Sim) printEvent(ev bridge.StreamEvent) {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		data = []byte(fmt.Sprint(ev.Data))
	}
	fmt.Fprintf(s.out, "[%s] %s\n", ev.Stream, data)
}

func (s *Sim) cmdBeacons(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: beacons <region> [count] [rssi]")
		return
	}
	count, rssi := 1, -65
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			fmt.Fprintf(s.out, "Error: invalid count %q\n", args[1])
			return
		}
		count = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintf(s.out, "Error: invalid rssi %q\n", args[2])
			return
		}
		rssi = n
	}

	r, _ := s.lookupRegion(args[0])
	s.report(s.env.Engine.EmitBeacons(args[0], makeBeacons(r, count, rssi)))
}

// makeBeacons builds count beacons matching r.
func makeBeacons(r region.Region, count, rssi int) []region.Beacon {
	id := uuid.New()
	if r.ProximityUUID != nil {
		id = *r.ProximityUUID
	}
	var major uint16 = 1
	if r.Major != nil {
		major = *r.Major
	}

	beacons := make([]region.Beacon, 0, count)
	for i := 0; i < count; i++ {
		minor := uint16(i + 1)
		if r.Minor != nil {
			minor = *r.Minor
		}
		beacons = append(beacons, region.Beacon{
			ProximityUUID: id,
			Major:         major,
			Minor:         minor,
			RSSI:          rssi,
			TxPower:       -59,
			Proximity:     proximityFor(rssi),
		})
	}
	return beacons
}

func proximityFor(rssi int) region.Proximity {
	switch {
	case rssi >= -55:
		return region.ProximityImmediate
	case rssi >= -75:
		return region.ProximityNear
	default:
		return region.ProximityFar
	}
}

func (s *Sim) cmdTransition(cmd string, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(s.out, "Usage: %s <region>\n", cmd)
		return
	}
	switch cmd {
	case "enter":
		s.report(s.env.Engine.EmitTransition(args[0], region.DidEnter, region.StateInside))
	case "exit-region":
		s.report(s.env.Engine.EmitTransition(args[0], region.DidExit, region.StateOutside))
	default:
		if len(args) != 2 {
			fmt.Fprintln(s.out, "Usage: state <region> inside|outside|unknown")
			return
		}
		state, ok := map[string]region.State{
			"inside":  region.StateInside,
			"outside": region.StateOutside,
			"unknown": region.StateUnknown,
		}[args[1]]
		if !ok {
			fmt.Fprintf(s.out, "Error: unknown state %q\n", args[1])
			return
		}
		s.report(s.env.Engine.EmitTransition(args[0], region.DidDetermineState, state))
	}
}

// cmdCall dispatches a bridge method. Results are printed when they arrive
// so prompts can be answered in between.
func (s *Sim) cmdCall(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: call <method> [json-args]")
		return
	}
	method := args[0]

	var callArgs map[string]any
	if len(args) > 1 {
		raw := strings.Join(args[1:], " ")
		if err := json.Unmarshal([]byte(raw), &callArgs); err != nil {
			fmt.Fprintf(s.out, "Error: invalid arguments: %v\n", err)
			return
		}
	}

	s.env.Dispatcher.Dispatch(method, callArgs, func(res bridge.Result) {
		data, err := json.Marshal(res)
		if err != nil {
			fmt.Fprintf(s.out, "[RESULT] %s: %v\n", method, err)
			return
		}
		fmt.Fprintf(s.out, "[RESULT] %s: %s\n", method, data)
	})
}

func (s *Sim) cmdPrompts() {
	prompts := s.env.Handset.Prompts()
	if len(prompts) == 0 {
		fmt.Fprintln(s.out, "No prompts shown")
		return
	}
	for i, p := range prompts {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, p)
	}
}
