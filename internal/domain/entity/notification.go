package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// Recipient указывает адресата уведомления: клиента либо фрилансера.
type Recipient struct {
	Kind valueobject.RecipientKind
	ID   uuid.UUID
}

func ClientRecipient(id uuid.UUID) Recipient {
	return Recipient{Kind: valueobject.RecipientClient, ID: id}
}

func FreelancerRecipient(id uuid.UUID) Recipient {
	return Recipient{Kind: valueobject.RecipientFreelancer, ID: id}
}

// Key используется как ключ подписки в websocket хабе.
func (r Recipient) Key() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// Notification неизменяема после создания.
type Notification struct {
	ID           uuid.UUID
	ClientID     *uuid.UUID
	FreelancerID *uuid.UUID
	Title        string
	Description  string
	Reason       valueobject.NotificationReason
	// TriggerID указывает работу, из-за которой отправлено уведомление.
	TriggerID uuid.UUID
	SentAt    time.Time
}

func NewNotification(to Recipient, title, description string, reason valueobject.NotificationReason, triggerID uuid.UUID, now time.Time) (*Notification, error) {
	if !to.Kind.IsValid() || to.ID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректный получатель уведомления")
	}
	if !reason.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректная причина уведомления")
	}

	n := &Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Reason:      reason,
		TriggerID:   triggerID,
		SentAt:      now,
	}
	id := to.ID
	if to.Kind == valueobject.RecipientClient {
		n.ClientID = &id
	} else {
		n.FreelancerID = &id
	}
	return n, nil
}

func (n *Notification) Recipient() Recipient {
	if n.ClientID != nil {
		return ClientRecipient(*n.ClientID)
	}
	if n.FreelancerID != nil {
		return FreelancerRecipient(*n.FreelancerID)
	}
	return Recipient{}
}
