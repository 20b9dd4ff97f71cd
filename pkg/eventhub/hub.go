package eventhub

import (
	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/region"
)

// Channel names.
const (
	ChannelRanging       = "ranging"
	ChannelMonitoring    = "monitoring"
	ChannelRadioState    = "radio_state"
	ChannelAuthorization = "authorization_status"
)

// Hub holds the four observer channels of a session.
type Hub struct {
	Ranging       *Channel[region.RangingResult]
	Monitoring    *Channel[region.MonitoringEvent]
	RadioState    *Channel[capability.RadioState]
	Authorization *Channel[capability.AuthorizationStatus]
}

// NewHub creates a hub with empty channels.
func NewHub() *Hub {
	return &Hub{
		Ranging:       NewChannel[region.RangingResult](ChannelRanging),
		Monitoring:    NewChannel[region.MonitoringEvent](ChannelMonitoring),
		RadioState:    NewChannel[capability.RadioState](ChannelRadioState),
		Authorization: NewChannel[capability.AuthorizationStatus](ChannelAuthorization),
	}
}

// OnSubscriptionChange sets a callback invoked whenever a channel gains or
// loses its subscriber. It must be set before the hub is shared.
func (h *Hub) OnSubscriptionChange(fn func(channel string, subscribed bool)) {
	h.Ranging.onChange = fn
	h.Monitoring.onChange = fn
	h.RadioState.onChange = fn
	h.Authorization.onChange = fn
}

// UnsubscribeAll clears every channel.
func (h *Hub) UnsubscribeAll() {
	h.Ranging.Unsubscribe()
	h.Monitoring.Unsubscribe()
	h.RadioState.Unsubscribe()
	h.Authorization.Unsubscribe()
}
