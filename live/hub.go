package live

import (
	"encoding/json"
	"sync"

	"github.com/foodhubapp/foodhub/models"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected admin dashboards.
const (
	EventOrderCreated  = "order_created"
	EventStatusUpdated = "order_status_updated"
	EventDashboard     = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a freshly placed order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastStatusUpdated announces an order status change.
func BroadcastStatusUpdated(order models.Order) {
	broadcast(Message{Event: EventStatusUpdated, Data: order})
}

// BroadcastDashboard pushes refreshed dashboard numbers.
func BroadcastDashboard(data interface{}) {
	broadcast(Message{Event: EventDashboard, Data: data})
}

func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
