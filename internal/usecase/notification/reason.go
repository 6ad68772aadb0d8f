package notification

import (
	"fmt"

	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

// Event обозначает событие жизненного цикла предложения, порождающее уведомления.
type Event string

const (
	EventProposalAdded    Event = "proposal_added"
	EventProposalAccepted Event = "proposal_accepted"
	EventProposalRejected Event = "proposal_rejected"
)

// ReasonMapping сопоставляет событию код причины уведомления.
type ReasonMapping map[Event]valueobject.NotificationReason

func DefaultReasonMapping() ReasonMapping {
	return ReasonMapping{
		EventProposalAdded:    valueobject.ReasonNewProposalAdded,
		EventProposalAccepted: valueobject.ReasonAcceptedProposal,
		EventProposalRejected: valueobject.ReasonRejectedProposal,
	}
}

// NewReasonMapping строит сопоставление с заданной причиной для отклонений.
// accepted_proposal воспроизводит историческую маркировку отклонений.
func NewReasonMapping(rejectReason string) (ReasonMapping, error) {
	m := DefaultReasonMapping()
	if rejectReason == "" {
		return m, nil
	}

	reason, err := valueobject.NewNotificationReason(rejectReason)
	if err != nil {
		return nil, fmt.Errorf("notification: недопустимая причина для отклонения %q: %w", rejectReason, err)
	}
	if reason == valueobject.ReasonNewProposalAdded {
		return nil, fmt.Errorf("notification: причина %q не может обозначать отклонение", rejectReason)
	}
	m[EventProposalRejected] = reason
	return m, nil
}

// Reason возвращает код причины события.
func (m ReasonMapping) Reason(ev Event) (valueobject.NotificationReason, error) {
	reason, ok := m[ev]
	if !ok {
		return "", fmt.Errorf("notification: нет причины для события %q", ev)
	}
	return reason, nil
}
