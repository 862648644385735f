package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	c := hub.register()
	defer hub.unregister(c)

	hub.Broadcast([]byte("hello"))

	select {
	case msg := <-c.send:
		if string(msg) != "hello" {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub()
	c := hub.register()
	defer hub.unregister(c)

	// Fill the buffer; the extra broadcast must not block
	for i := 0; i < cap(c.send)+10; i++ {
		hub.Broadcast([]byte("x"))
	}
	if len(c.send) != cap(c.send) {
		t.Fatalf("expected a full buffer, got %d", len(c.send))
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	c := hub.register()
	hub.unregister(c)
	if _, ok := <-c.send; ok {
		t.Fatalf("expected closed channel")
	}
	// Double unregister is harmless
	hub.unregister(c)
}

func TestServeWSDeliversBroadcasts(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the subscriber
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		n := len(hub.clients)
		hub.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	hub.Broadcast([]byte(`{"litros_totales":42}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"litros_totales":42}` {
		t.Fatalf("unexpected payload %q", msg)
	}
}
