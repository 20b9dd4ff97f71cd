package orchestrator

import (
	"fmt"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// SubscribeRanging ranges regions for as long as the subscription lives and
// delivers the results to h. It replaces any previous ranging subscriber,
// whose regions are stopped. The engine must be bound.
func (o *Orchestrator) SubscribeRanging(regions []region.Region, h eventhub.Handler[region.RangingResult]) (*eventhub.Subscription, error) {
	return subscribeRegions(o, o.hub.Ranging, regions, h, o.lifecycle.StartRanging, o.lifecycle.StopRanging)
}

// SubscribeMonitoring monitors regions for as long as the subscription
// lives and delivers transitions to h.
func (o *Orchestrator) SubscribeMonitoring(regions []region.Region, h eventhub.Handler[region.MonitoringEvent]) (*eventhub.Subscription, error) {
	return subscribeRegions(o, o.hub.Monitoring, regions, h, o.lifecycle.StartMonitoring, o.lifecycle.StopMonitoring)
}

func subscribeRegions[T any](o *Orchestrator, ch *eventhub.Channel[T], regions []region.Region,
	h eventhub.Handler[T], start, stop func(region.Region) error) (*eventhub.Subscription, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: no regions", ErrInvalidArgument)
	}
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	sub := ch.Subscribe(h)
	started := make([]region.Region, 0, len(regions))
	for _, r := range regions {
		if err := start(r); err != nil {
			for _, s := range started {
				_ = stop(s)
			}
			sub.Cancel()
			return nil, err
		}
		started = append(started, r)
	}

	sub.OnCancel(func() {
		for _, r := range started {
			if err := stop(r); err != nil {
				o.warn("stopping region failed", "channel", ch.Name(), "region", r.Identifier, "err", err)
			}
		}
	})
	return sub, nil
}

// SubscribeRadioState delivers radio power changes to h. The subscriber
// receives the current state right away when a host is attached.
func (o *Orchestrator) SubscribeRadioState(h eventhub.Handler[capability.RadioState]) *eventhub.Subscription {
	sub := o.hub.RadioState.Subscribe(h)
	if a, err := o.attached(); err == nil {
		o.NotifyRadioState(capability.SafeRadioState(a.probe))
	}
	return sub
}

// SubscribeAuthorization delivers authorization status pushes to h. Pushes
// only happen in response to a permission prompt answered for this session.
func (o *Orchestrator) SubscribeAuthorization(h eventhub.Handler[capability.AuthorizationStatus]) *eventhub.Subscription {
	return o.hub.Authorization.Subscribe(h)
}
