package pending

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Request errors.
var (
	ErrSuperseded = errors.New("request superseded by a newer request")
)

// Class identifies a request class. At most one request per class is
// outstanding at any time.
type Class uint8

const (
	// ClassGeneral is the "unlock all capabilities, then act" class.
	ClassGeneral Class = iota

	// ClassRadioPower is the "unlock radio power only" class.
	ClassRadioPower

	// ClassBroadcast covers asynchronous advertising start.
	ClassBroadcast
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassGeneral:
		return "GENERAL"
	case ClassRadioPower:
		return "RADIO_POWER"
	case ClassBroadcast:
		return "BROADCAST"
	default:
		return "UNKNOWN"
	}
}

// Result is the settled outcome of a request.
type Result struct {
	Value bool
	Err   error
}

var nextRequestID atomic.Uint64

// Request is a resolve-once handle for an asynchronous command.
type Request struct {
	id      uint64
	class   Class
	command string

	once   sync.Once
	done   chan struct{}
	result Result

	mu       sync.Mutex
	onSettle []func(Result)
}

// New creates an unsettled request for the named command.
func New(class Class, command string) *Request {
	return &Request{
		id:      nextRequestID.Add(1),
		class:   class,
		command: command,
		done:    make(chan struct{}),
	}
}

// Settled creates a request that is already resolved with value.
func Settled(class Class, command string, value bool) *Request {
	r := New(class, command)
	r.Resolve(value)
	return r
}

// Failed creates a request that has already failed with err.
func Failed(class Class, command string, err error) *Request {
	r := New(class, command)
	r.Fail(err)
	return r
}

// ID returns the process-unique request identifier.
func (r *Request) ID() uint64 { return r.id }

// Class returns the request class.
func (r *Request) Class() Class { return r.class }

// Command returns the name of the command that created the request.
func (r *Request) Command() string { return r.command }

// Resolve settles the request successfully. It returns false if the request
// was already settled.
func (r *Request) Resolve(value bool) bool {
	return r.settle(Result{Value: value})
}

// Fail settles the request with err. It returns false if the request was
// already settled.
func (r *Request) Fail(err error) bool {
	if err == nil {
		err = errors.New("request failed")
	}
	return r.settle(Result{Err: err})
}

func (r *Request) settle(res Result) bool {
	settled := false
	var callbacks []func(Result)
	r.once.Do(func() {
		r.mu.Lock()
		r.result = res
		callbacks = r.onSettle
		r.onSettle = nil
		close(r.done)
		r.mu.Unlock()
		settled = true
	})

	// Callbacks run outside the once so they may touch the request again.
	for _, fn := range callbacks {
		fn(res)
	}
	return settled
}

// OnSettle registers fn to run once the request settles. If the request is
// already settled fn runs immediately on the calling goroutine.
func (r *Request) OnSettle(fn func(Result)) {
	r.mu.Lock()
	select {
	case <-r.done:
		res := r.result
		r.mu.Unlock()
		fn(res)
		return
	default:
	}
	r.onSettle = append(r.onSettle, fn)
	r.mu.Unlock()
}

// Done returns a channel that is closed once the request settles.
func (r *Request) Done() <-chan struct{} { return r.done }

// IsSettled reports whether the request has settled.
func (r *Request) IsSettled() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Result returns the settled result. It returns false if the request has
// not settled yet.
func (r *Request) Result() (Result, bool) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the request settles or ctx is done.
func (r *Request) Wait(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.result.Value, r.result.Err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
