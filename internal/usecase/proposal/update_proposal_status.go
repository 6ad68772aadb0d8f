package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/notification"
)

// Decision обозначает решение клиента по предложению.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type ReviewProposalInput struct {
	ProposalID uuid.UUID
	Decision   Decision
}

// ReviewResult описывает зафиксированный переход.
type ReviewResult struct {
	Proposal      *entity.Proposal
	Job           *entity.Job
	Notifications []*entity.Notification
}

type ReviewProposalUseCase struct {
	store   repository.Store
	emitter *notification.Emitter
	now     func() time.Time
}

func NewReviewProposalUseCase(store repository.Store, emitter *notification.Emitter, now func() time.Time) *ReviewProposalUseCase {
	return &ReviewProposalUseCase{
		store:   store,
		emitter: emitter,
		now:     clockOrDefault(now),
	}
}

// Execute переводит ожидающее предложение в approved или rejected.
// Принятие закрывает работу. Фрилансер и клиент получают по уведомлению.
// Все изменения фиксируются вместе; статусы записываются с проверкой прежнего значения.
func (uc *ReviewProposalUseCase) Execute(ctx context.Context, input ReviewProposalInput) (*ReviewResult, error) {
	var event notification.Event
	switch input.Decision {
	case DecisionAccept:
		event = notification.EventProposalAccepted
	case DecisionReject:
		event = notification.EventProposalRejected
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректное решение по предложению")
	}

	var result *ReviewResult
	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		now := uc.now()

		proposal, err := tx.Proposals().FindByID(ctx, input.ProposalID)
		if err != nil {
			return err
		}
		if input.Decision == DecisionAccept {
			err = proposal.Approve(now)
		} else {
			err = proposal.Reject(now)
		}
		if err != nil {
			return err
		}

		job, err := tx.Jobs().FindByID(ctx, proposal.JobID)
		if err != nil {
			return err
		}
		// Отклонение работу не трогает: другие предложения остаются в рассмотрении.
		if input.Decision == DecisionAccept {
			if err := job.Close(proposal.FreelancerID, now); err != nil {
				return err
			}
		}

		freelancer, err := tx.Freelancers().FindByID(ctx, proposal.FreelancerID)
		if err != nil {
			return err
		}
		toFreelancer, err := uc.emitter.Stage(ctx, tx.Notifications(), event,
			entity.FreelancerRecipient(freelancer.ID), subjectOf(job, freelancer))
		if err != nil {
			return err
		}

		client, err := tx.Clients().FindByID(ctx, job.ClientID)
		if err != nil {
			return err
		}
		toClient, err := uc.emitter.Stage(ctx, tx.Notifications(), event,
			entity.ClientRecipient(client.ID), subjectOf(job, freelancer))
		if err != nil {
			return err
		}

		if err := tx.Proposals().Transition(ctx, proposal, valueobject.ProposalStatusPending); err != nil {
			return err
		}
		if input.Decision == DecisionAccept {
			if err := tx.Jobs().Close(ctx, job); err != nil {
				return err
			}
		}

		result = &ReviewResult{
			Proposal:      proposal,
			Job:           job,
			Notifications: []*entity.Notification{toFreelancer, toClient},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Publish(result.Notifications...)
	return result, nil
}
