package websocket

import (
	"time"

	"github.com/ozan/academix/internal/app/services"
)

// Notifier adapts the hub to the services.Notifier interface so service
// events fan out to connected clients.
type Notifier struct {
	hub *Hub
}

// NewNotifier creates a Notifier backed by the given hub.
func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// Publish broadcasts a service event to all connected clients.
func (n *Notifier) Publish(event services.Event) {
	n.hub.Broadcast(&Message{
		Type:      event.Type,
		Payload:   event.Payload,
		Timestamp: time.Now(),
	})
}
