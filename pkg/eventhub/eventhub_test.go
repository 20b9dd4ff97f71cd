package eventhub

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/capability"
	"github.com/beaconsense/beacon-go/pkg/region"
)

func TestPushWithoutSubscriberIsNoop(t *testing.T) {
	c := NewChannel[int]("test")
	if c.Push(1) {
		t.Error("Push without subscriber reported delivery")
	}
	c.Unsubscribe() // no subscriber: still fine
}

func TestLastSubscriberWins(t *testing.T) {
	c := NewChannel[int]("test")

	var first, second []int
	sub1 := c.Subscribe(func(v int) { first = append(first, v) })
	c.Push(1)

	sub2 := c.Subscribe(func(v int) { second = append(second, v) })
	c.Push(2)

	if !sub1.Canceled() {
		t.Error("replaced subscription should be cancelled")
	}
	if sub2.Canceled() {
		t.Error("active subscription should not be cancelled")
	}
	if len(first) != 1 || first[0] != 1 {
		t.Errorf("first subscriber got %v, want [1]", first)
	}
	if len(second) != 1 || second[0] != 2 {
		t.Errorf("second subscriber got %v, want [2]", second)
	}
}

func TestStaleCancelKeepsNewSubscriber(t *testing.T) {
	c := NewChannel[int]("test")

	sub1 := c.Subscribe(func(int) {})
	var got int
	c.Subscribe(func(v int) { got = v })

	sub1.Cancel() // already replaced: must not clear the slot
	if !c.Subscribed() {
		t.Fatal("stale cancel cleared the active subscriber")
	}
	c.Push(7)
	if got != 7 {
		t.Errorf("active subscriber got %d, want 7", got)
	}
}

func TestUnsubscribeThenPush(t *testing.T) {
	c := NewChannel[string]("test")

	var calls int
	sub := c.Subscribe(func(string) { calls++ })
	sub.Cancel()
	sub.Cancel() // idempotent

	if c.Push("x") {
		t.Error("Push after unsubscribe reported delivery")
	}
	if calls != 0 {
		t.Errorf("handler called %d times after unsubscribe", calls)
	}
}

func TestOnCancelRunsOnReplace(t *testing.T) {
	c := NewChannel[int]("test")

	var stopped atomic.Bool
	sub := c.Subscribe(func(int) {})
	sub.OnCancel(func() { stopped.Store(true) })

	c.Subscribe(func(int) {})
	if !stopped.Load() {
		t.Error("OnCancel hook did not run on replacement")
	}

	// Registering on an ended subscription runs immediately.
	var late bool
	sub.OnCancel(func() { late = true })
	if !late {
		t.Error("OnCancel on cancelled subscription should run immediately")
	}
}

func TestReplaceDuringDelivery(t *testing.T) {
	c := NewChannel[int]("test")

	entered := make(chan struct{})
	release := make(chan struct{})
	var old []int
	var oldMu sync.Mutex

	c.Subscribe(func(v int) {
		oldMu.Lock()
		old = append(old, v)
		oldMu.Unlock()
		if v == 1 {
			close(entered)
			<-release
		}
	})

	pushed := make(chan struct{})
	go func() {
		c.Push(1)
		close(pushed)
	}()
	<-entered

	var got []int
	replaced := make(chan struct{})
	go func() {
		c.Subscribe(func(v int) { got = append(got, v) })
		close(replaced)
	}()

	select {
	case <-replaced:
	case <-time.After(time.Second):
		t.Fatal("Subscribe blocked behind an in-flight delivery")
	}

	close(release)
	<-pushed
	c.Push(2)

	oldMu.Lock()
	defer oldMu.Unlock()
	if len(old) != 1 || old[0] != 1 {
		t.Errorf("replaced subscriber got %v, want [1]", old)
	}
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("new subscriber got %v, want [2]", got)
	}
}

func TestCancelFromHandler(t *testing.T) {
	c := NewChannel[int]("test")

	var sub *Subscription
	var calls int
	sub = c.Subscribe(func(int) {
		calls++
		sub.Cancel()
	})

	done := make(chan struct{})
	go func() {
		c.Push(1)
		c.Push(2)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push deadlocked when the handler cancelled its subscription")
	}

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if c.Subscribed() {
		t.Error("channel still subscribed after cancel from handler")
	}
}

func TestResubscribeFromHandler(t *testing.T) {
	c := NewChannel[int]("test")

	var second []int
	c.Subscribe(func(int) {
		c.Subscribe(func(v int) { second = append(second, v) })
	})

	done := make(chan struct{})
	go func() {
		c.Push(1)
		c.Push(2)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("push deadlocked when the handler subscribed again")
	}

	if len(second) != 1 || second[0] != 2 {
		t.Errorf("replacement got %v, want [2]", second)
	}
}

func TestConcurrentSubscribeAndPush(t *testing.T) {
	c := NewChannel[int]("test")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sub := c.Subscribe(func(int) {})
				sub.Cancel()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Push(j)
			}
		}()
	}
	wg.Wait()
}

func TestHubChannelsAreIndependent(t *testing.T) {
	h := NewHub()

	var changes []string
	h.OnSubscriptionChange(func(name string, subscribed bool) {
		if subscribed {
			changes = append(changes, "+"+name)
		} else {
			changes = append(changes, "-"+name)
		}
	})

	var radio []capability.RadioState
	h.RadioState.Subscribe(func(s capability.RadioState) { radio = append(radio, s) })

	if h.Authorization.Push(capability.AuthorizationAllowed) {
		t.Error("authorization channel has no subscriber")
	}
	if h.Ranging.Push(region.RangingResult{Region: region.New("a")}) {
		t.Error("ranging channel has no subscriber")
	}
	h.RadioState.Push(capability.RadioOn)

	if len(radio) != 1 || radio[0] != capability.RadioOn {
		t.Errorf("radio subscriber got %v", radio)
	}

	h.UnsubscribeAll()
	if h.RadioState.Subscribed() {
		t.Error("UnsubscribeAll left radio subscribed")
	}

	want := []string{"+" + ChannelRadioState, "-" + ChannelRadioState}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}
