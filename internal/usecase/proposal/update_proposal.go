package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
)

type UpdateProposalInput struct {
	ProposalID   uuid.UUID
	JobID        uuid.UUID
	FreelancerID uuid.UUID
	Description  string
	Duration     int
	Price        float64
	ReposLinks   []string
	// Images полностью заменяет прежний набор. Пустой набор удаляет все изображения.
	Images []attachment.Attachment
}

type UpdateProposalUseCase struct {
	store repository.Store
	now   func() time.Time
}

func NewUpdateProposalUseCase(store repository.Store, now func() time.Time) *UpdateProposalUseCase {
	return &UpdateProposalUseCase{
		store: store,
		now:   clockOrDefault(now),
	}
}

func (uc *UpdateProposalUseCase) Execute(ctx context.Context, input UpdateProposalInput) (*entity.Proposal, error) {
	var updated *entity.Proposal

	err := uc.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		proposal, err := tx.Proposals().FindByIDWithImages(ctx, input.ProposalID)
		if err != nil {
			return err
		}

		// Связи проверяются заново: предложение может переноситься на другую работу.
		if _, err := tx.Jobs().FindByID(ctx, input.JobID); err != nil {
			return err
		}
		if _, err := tx.Freelancers().FindByID(ctx, input.FreelancerID); err != nil {
			return err
		}

		if err := attachment.ValidateAll(input.Images); err != nil {
			return err
		}

		now := uc.now()
		if err := proposal.Revise(
			input.JobID,
			input.FreelancerID,
			input.Description,
			input.Duration,
			input.Price,
			input.ReposLinks,
			now,
		); err != nil {
			return err
		}

		if err := tx.Images().DeleteByProposalID(ctx, proposal.ID); err != nil {
			return err
		}
		proposal.AttachImages(toImages(input.Images), now)
		if len(proposal.Images) > 0 {
			if err := tx.Images().CreateBatch(ctx, proposal.Images); err != nil {
				return err
			}
		}

		if err := tx.Proposals().Update(ctx, proposal); err != nil {
			return err
		}

		updated = proposal
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
