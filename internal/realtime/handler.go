package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is enforced on the REST routes
			},
		},
	}
}

// ServeFeed upgrades GET /ws/feed and attaches the socket to the hub.
func (h *Handler) ServeFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(h.hub, conn)
	if !h.hub.join(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
