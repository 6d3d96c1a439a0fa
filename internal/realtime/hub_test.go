package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func startFeed(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws/feed", NewHandler(hub).ServeFeed)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/feed"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	env := readEnvelope(t, conn)
	if env.Event != EventConnected {
		t.Fatalf("first event = %q, want %q", env.Event, EventConnected)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestConnectGreeting(t *testing.T) {
	_, url := startFeed(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	env := readEnvelope(t, conn)
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data["message"] != "Connected to live feed!" {
		t.Errorf("message = %q", data["message"])
	}
}

func TestPublishReachesEveryClient(t *testing.T) {
	hub, url := startFeed(t)
	a := dial(t, url)
	b := dial(t, url)

	hub.Publish(EventLikePost, map[string]any{"post_id": "p1", "count": 3})

	for _, conn := range []*websocket.Conn{a, b} {
		env := readEnvelope(t, conn)
		if env.Event != EventLikePost {
			t.Fatalf("event = %q", env.Event)
		}
		var data struct {
			PostID string `json:"post_id"`
			Count  int    `json:"count"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if data.PostID != "p1" || data.Count != 3 {
			t.Errorf("data = %+v", data)
		}
	}
}

func TestClientEventsEchoOnlyToSender(t *testing.T) {
	hub, url := startFeed(t)
	sender := dial(t, url)
	listener := dial(t, url)

	// unknown events are ignored, so the echo must be the next frame
	if err := sender.WriteJSON(map[string]any{"event": "typing", "data": map[string]string{}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	forged := map[string]any{"event": "like_post", "data": map[string]any{"post_id": "any", "count": 999999}}
	if err := sender.WriteJSON(forged); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, sender)
	if env.Event != EventLikePost {
		t.Fatalf("sender event = %q, want %q", env.Event, EventLikePost)
	}
	if !strings.Contains(string(env.Data), "999999") {
		t.Errorf("data = %s", env.Data)
	}

	// the listener's next frame is the committed event, never the client's frame
	hub.Publish(EventNewPost, map[string]string{"post_id": "p1"})
	got := readEnvelope(t, listener)
	if got.Event != EventNewPost || strings.Contains(string(got.Data), "999999") {
		t.Errorf("listener got %q %s", got.Event, got.Data)
	}
}

func TestDisconnectedClientDoesNotBlockPublish(t *testing.T) {
	hub, url := startFeed(t)
	gone := dial(t, url)
	stay := dial(t, url)
	gone.Close()

	for i := 0; i < 5; i++ {
		hub.Publish(EventNewPost, map[string]int{"n": i})
	}

	for i := 0; i < 5; i++ {
		if env := readEnvelope(t, stay); env.Event != EventNewPost {
			t.Fatalf("event = %q", env.Event)
		}
	}
}
