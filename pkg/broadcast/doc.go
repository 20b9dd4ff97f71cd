// Package broadcast lets the device advertise itself as a beacon.
//
// Config describes the advertised identity and radio settings; Broadcaster
// gates advertising on hardware support and reports the asynchronous start
// result through a pending request of class ClassBroadcast.
package broadcast
