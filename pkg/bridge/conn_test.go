package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beaconsense/beacon-go/pkg/eventhub"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverSide returns the server end of a fresh websocket connection.
func serverSide(t *testing.T) *websocket.Conn {
	t.Helper()
	conns := make(chan *websocket.Conn, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- ws
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case ws := <-conns:
		return ws
	case <-time.After(2 * time.Second):
		t.Fatal("server side of websocket never arrived")
		return nil
	}
}

func TestSendDropsSlowClient(t *testing.T) {
	c := &wsConn{
		ws:   serverSide(t),
		out:  make(chan Outbound, 1),
		done: make(chan struct{}),
		subs: make(map[string]*eventhub.Subscription),
	}

	// No write loop runs, so the queue never drains.
	assert.True(t, c.send(Outbound{Type: TypeEvent, Stream: "ranging"}))

	sent := make(chan bool, 1)
	go func() { sent <- c.send(Outbound{Type: TypeEvent, Stream: "ranging"}) }()
	select {
	case ok := <-sent:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send blocked on a full queue")
	}

	select {
	case <-c.done:
	default:
		t.Error("slow client was not disconnected")
	}
	assert.False(t, c.send(Outbound{Type: TypeEvent}))
}
