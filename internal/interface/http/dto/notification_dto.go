package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
)

type NotificationResponse struct {
	ID           uuid.UUID  `json:"id"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	FreelancerID *uuid.UUID `json:"freelancer_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Reason       string     `json:"reason"`
	TriggerID    uuid.UUID  `json:"trigger_id"`
	SentAt       time.Time  `json:"sent_at"`
}

func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		ClientID:     n.ClientID,
		FreelancerID: n.FreelancerID,
		Title:        n.Title,
		Description:  n.Description,
		Reason:       string(n.Reason),
		TriggerID:    n.TriggerID,
		SentAt:       n.SentAt,
	}
}

func ToNotificationResponses(ns []*entity.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		responses = append(responses, ToNotificationResponse(n))
	}
	return responses
}
