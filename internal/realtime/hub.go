package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event describes one row change on the order, item or payment relations.
// Station screens use it as a refresh trigger, not as a data source: the
// authoritative state always comes from a follow-up fetch.
type Event struct {
	Table   string `json:"table"`
	Action  string `json:"action"`
	OrderID uint   `json:"order_id"`
	ItemID  uint   `json:"item_id,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // station screens connect from the local network
	},
}

// Hub fans change events out to every subscribed station screen.
type Hub struct {
	clients    map[*hubClient]bool
	broadcast  chan Event
	register   chan *hubClient
	unregister chan *hubClient
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an idle hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*hubClient]bool),
		broadcast:  make(chan Event, 64),
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
	}
}

// Run owns the client set until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				close(client.send)
				delete(h.clients, client)
			}
		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error marshaling change event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// slow consumer; it will catch up on its next poll
				}
			}
		}
	}
}

// Broadcast queues a change event without blocking the writer path.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("Change event buffer full, dropping event")
	}
}

// ServeWS upgrades the request and subscribes the connection.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &hubClient{
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

// readPump drains the connection so close frames and pongs are handled;
// clients have nothing meaningful to say to the hub.
func (c *hubClient) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pushes queued events and keeps the connection alive.
func (c *hubClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
