package ws

import (
	"context"
	"time"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
)

// EventNotification обозначает сообщение о новом уведомлении.
const EventNotification = "notification"

// NotificationPublisher доставляет уведомления через Hub получателю по его ключу.
type NotificationPublisher struct {
	hub *Hub
}

// NewNotificationPublisher создаёт новый адаптер.
func NewNotificationPublisher(hub *Hub) *NotificationPublisher {
	return &NotificationPublisher{hub: hub}
}

type notificationPayload struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reason      string    `json:"reason"`
	TriggerID   string    `json:"trigger_id"`
	SentAt      time.Time `json:"sent_at"`
}

// Publish реализует notification.Publisher.
func (p *NotificationPublisher) Publish(ctx context.Context, n *entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.hub.Broadcast(n.Recipient().Key(), EventNotification, notificationPayload{
		ID:          n.ID.String(),
		Title:       n.Title,
		Description: n.Description,
		Reason:      string(n.Reason),
		TriggerID:   n.TriggerID.String(),
		SentAt:      n.SentAt,
	})
}
