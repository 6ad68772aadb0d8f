package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/notification"
)

type CreateProposalInput struct {
	JobID        uuid.UUID
	FreelancerID uuid.UUID
	Description  string
	Duration     int
	Price        float64
	ReposLinks   []string
	Images       []attachment.Attachment
}

type CreateProposalUseCase struct {
	store   repository.Store
	emitter *notification.Emitter
	now     func() time.Time
}

func NewCreateProposalUseCase(store repository.Store, emitter *notification.Emitter, now func() time.Time) *CreateProposalUseCase {
	return &CreateProposalUseCase{
		store:   store,
		emitter: emitter,
		now:     clockOrDefault(now),
	}
}

// Execute сохраняет предложение, его изображения и уведомление клиенту одной транзакцией.
func (uc *CreateProposalUseCase) Execute(ctx context.Context, input CreateProposalInput) (*entity.Proposal, error) {
	var (
		created *entity.Proposal
		staged  *entity.Notification
	)

	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		job, err := tx.Jobs().FindByID(ctx, input.JobID)
		if err != nil {
			return err
		}

		freelancer, err := tx.Freelancers().FindByID(ctx, input.FreelancerID)
		if err != nil {
			return err
		}

		if err := attachment.ValidateAll(input.Images); err != nil {
			return err
		}

		now := uc.now()
		proposal, err := entity.NewProposal(
			job.ID,
			freelancer.ID,
			input.Description,
			input.Duration,
			input.Price,
			input.ReposLinks,
			now,
		)
		if err != nil {
			return err
		}
		proposal.AttachImages(toImages(input.Images), now)

		if err := tx.Proposals().Create(ctx, proposal); err != nil {
			return err
		}
		if len(proposal.Images) > 0 {
			if err := tx.Images().CreateBatch(ctx, proposal.Images); err != nil {
				return err
			}
		}

		staged, err = uc.emitter.Stage(ctx, tx.Notifications(), notification.EventProposalAdded,
			entity.ClientRecipient(job.ClientID), subjectOf(job, freelancer))
		if err != nil {
			return err
		}

		created = proposal
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Publish(staged)
	return created, nil
}

func toImages(attachments []attachment.Attachment) []entity.ProposalImage {
	if len(attachments) == 0 {
		return nil
	}
	images := make([]entity.ProposalImage, len(attachments))
	for i, a := range attachments {
		images[i] = entity.ProposalImage{
			FileName: a.FileName,
			Size:     int64(len(a.Data)),
			Data:     a.Data,
		}
	}
	return images
}

func subjectOf(job *entity.Job, freelancer *entity.Freelancer) notification.Subject {
	return notification.Subject{
		JobID:          job.ID,
		JobTitle:       job.Title,
		FreelancerName: freelancer.Name,
	}
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
