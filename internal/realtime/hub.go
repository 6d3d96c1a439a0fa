// Package realtime fans feed events out to every connected websocket client.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

const (
	EventConnected       = "connected"
	EventNewPost         = "broadcast_new_post"
	EventNewComment      = "broadcast_new_comment"
	EventLikePost        = "broadcast_like_post"
	EventReportContent   = "broadcast_report_content"
	connectedGreeting    = "Connected to live feed!"
	broadcastQueueLength = 256
)

// relayed maps the events clients may send to the event echoed back to the
// sender. Only committed changes reach other clients, through Publish.
var relayed = map[string]string{
	"new_post":       EventNewPost,
	"new_comment":    EventNewComment,
	"like_post":      EventLikePost,
	"report_content": EventReportContent,
}

// Envelope is the frame written to and read from every socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Publisher is the only view other components get of the hub.
type Publisher interface {
	Publish(event string, data any)
}

// Hub owns the set of live clients. Only the Run goroutine touches it.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	reply      chan reply
	done       chan struct{}
	once       sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastQueueLength),
		reply:      make(chan reply),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.once.Do(func() { close(h.done) })

	greeting, _ := encode(EventConnected, map[string]string{"message": connectedGreeting})

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.deliver(client, greeting)

		case client := <-h.unregister:
			h.drop(client)

		case msg := <-h.broadcast:
			for client := range h.clients {
				h.deliver(client, msg)
			}

		case r := <-h.reply:
			if _, ok := h.clients[r.client]; ok {
				h.deliver(r.client, r.msg)
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// Publish queues an event for every connected client. It never blocks the
// caller: when the hub is saturated or stopped the event is dropped.
func (h *Hub) Publish(event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		log.Printf("❌ realtime: encode %s: %v", event, err)
		return
	}

	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		log.Printf("⚠️ realtime: broadcast queue full, dropping %s", event)
	}
}

type reply struct {
	client *Client
	msg    []byte
}

// replyTo queues a frame for a single client.
func (h *Hub) replyTo(client *Client, event string, data any) {
	msg, err := encode(event, data)
	if err != nil {
		return
	}
	select {
	case h.reply <- reply{client: client, msg: msg}:
	case <-h.done:
	}
}

func (h *Hub) deliver(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		// slow consumer
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
