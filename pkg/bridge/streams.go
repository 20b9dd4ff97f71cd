package bridge

import (
	"fmt"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/beaconsense/beacon-go/pkg/orchestrator"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// StreamEvent is one event delivered on a stream.
type StreamEvent struct {
	Stream string `json:"stream"`
	Data   any    `json:"data"`
}

// Emit receives stream events.
type Emit func(StreamEvent)

// Streams returns the stream names a caller can subscribe to.
func Streams() []string {
	return []string{
		eventhub.ChannelRanging,
		eventhub.ChannelMonitoring,
		eventhub.ChannelRadioState,
		eventhub.ChannelAuthorization,
	}
}

// Subscribe attaches emit to stream. The ranging and monitoring streams
// take a "regions" list in args and watch those regions until the
// subscription is canceled. Each stream has a single subscriber; a new
// subscription replaces the previous one.
func (d *Dispatcher) Subscribe(stream string, args map[string]any, emit Emit) (*eventhub.Subscription, error) {
	switch stream {
	case eventhub.ChannelRanging:
		regions, err := regionsArg(args)
		if err != nil {
			return nil, err
		}
		return d.orch.SubscribeRanging(regions, func(r region.RangingResult) {
			emit(StreamEvent{Stream: stream, Data: r})
		})

	case eventhub.ChannelMonitoring:
		regions, err := regionsArg(args)
		if err != nil {
			return nil, err
		}
		return d.orch.SubscribeMonitoring(regions, func(ev region.MonitoringEvent) {
			emit(StreamEvent{Stream: stream, Data: ev})
		})

	case eventhub.ChannelRadioState:
		return d.orch.SubscribeRadioState(func(s capability.RadioState) {
			emit(StreamEvent{Stream: stream, Data: RadioStateName(s)})
		}), nil

	case eventhub.ChannelAuthorization:
		return d.orch.SubscribeAuthorization(func(s capability.AuthorizationStatus) {
			emit(StreamEvent{Stream: stream, Data: s.String()})
		}), nil
	}
	return nil, fmt.Errorf("%w: unknown stream %q", orchestrator.ErrInvalidArgument, stream)
}

func regionsArg(args map[string]any) ([]region.Region, error) {
	raw, ok := args["regions"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: regions list is required", orchestrator.ErrInvalidArgument)
	}
	return region.ParseList(raw)
}

func identifiers(regions []region.Region) []string {
	out := make([]string, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Identifier)
	}
	return out
}
