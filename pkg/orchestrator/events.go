package orchestrator

import (
	"errors"
	"time"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/log"
	"github.com/beaconsense/beacon-go/pkg/pending"
)

func (o *Orchestrator) event(category log.Category, requestID uint64) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		SessionID: o.sessionID,
		Category:  category,
		RequestID: requestID,
	}
}

func (o *Orchestrator) logCommand(name, class string) {
	ev := o.event(log.CategoryCommand, 0)
	ev.Command = &log.CommandEvent{Name: name, Class: class}
	o.events.Log(ev)
	o.debug("command", "command", name)
}

func (o *Orchestrator) logStep(requestID uint64, step Step, snap capability.Snapshot, bound bool) {
	ev := o.event(log.CategoryStep, requestID)
	ev.Step = &log.StepEvent{
		Step:               step.String(),
		LocationPermission: snap.LocationPermission,
		LocationService:    snap.LocationService,
		Radio:              snap.Radio.String(),
		Bound:              bound,
	}
	o.events.Log(ev)
	o.debug("step", "request_id", requestID, "step", step.String(), "radio", snap.Radio.String(),
		"permission", snap.LocationPermission, "location_service", snap.LocationService, "bound", bound)
}

func (o *Orchestrator) logPrompt(p capability.PromptEvent) {
	ev := o.event(log.CategoryPrompt, 0)
	ev.Prompt = &log.PromptEvent{
		PromptID: p.ID,
		Prompt:   p.Prompt.String(),
		Outcome:  p.Outcome.String(),
		Value:    p.Value,
	}
	o.events.Log(ev)
}

func (o *Orchestrator) logCapability(channel, value string, delivered bool) {
	ev := o.event(log.CategoryCapability, 0)
	ev.Capability = &log.CapabilityEvent{Channel: channel, Value: value, Delivered: delivered}
	o.events.Log(ev)
}

func (o *Orchestrator) logError(err error, context string) {
	ev := o.event(log.CategoryError, 0)
	ev.Error = &log.ErrorEventData{Kind: KindOf(err).String(), Message: err.Error(), Context: context}
	o.events.Log(ev)
}

// track records the lifecycle of req in the event log.
func (o *Orchestrator) track(req *pending.Request) *pending.Request {
	ev := o.event(log.CategoryRequest, req.ID())
	ev.Request = &log.RequestEvent{
		Class:   req.Class().String(),
		Command: req.Command(),
		Outcome: log.RequestCreated,
	}
	o.events.Log(ev)

	req.OnSettle(func(res pending.Result) {
		ev := o.event(log.CategoryRequest, req.ID())
		re := &log.RequestEvent{Class: req.Class().String(), Command: req.Command()}
		switch {
		case res.Err == nil:
			re.Outcome = log.RequestResolved
			re.Value = res.Value
		case errors.Is(res.Err, pending.ErrSuperseded):
			re.Outcome = log.RequestSuperseded
		default:
			re.Outcome = log.RequestFailed
			re.Kind = KindOf(res.Err).String()
			re.Message = res.Err.Error()
		}
		ev.Request = re
		o.events.Log(ev)
		o.debug("request settled", "request_id", req.ID(), "command", req.Command(),
			"outcome", re.Outcome.String(), "value", res.Value)
	})
	return req
}
