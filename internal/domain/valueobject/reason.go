package valueobject

import "github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"

// NotificationReason кодирует причину уведомления.
type NotificationReason string

const (
	ReasonNewProposalAdded NotificationReason = "new_proposal_added"
	ReasonAcceptedProposal NotificationReason = "accepted_proposal"
	ReasonRejectedProposal NotificationReason = "rejected_proposal"
)

func (r NotificationReason) IsValid() bool {
	switch r {
	case ReasonNewProposalAdded, ReasonAcceptedProposal, ReasonRejectedProposal:
		return true
	}
	return false
}

func NewNotificationReason(reason string) (NotificationReason, error) {
	r := NotificationReason(reason)
	if !r.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректная причина уведомления")
	}
	return r, nil
}

// RecipientKind различает получателей уведомлений.
type RecipientKind string

const (
	RecipientClient     RecipientKind = "client"
	RecipientFreelancer RecipientKind = "freelancer"
)

func (k RecipientKind) IsValid() bool {
	return k == RecipientClient || k == RecipientFreelancer
}
