package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
)

type DeleteProposalUseCase struct {
	store repository.Store
}

func NewDeleteProposalUseCase(store repository.Store) *DeleteProposalUseCase {
	return &DeleteProposalUseCase{store: store}
}

// Execute удаляет предложение вместе с изображениями. Уведомления не отправляются.
func (uc *DeleteProposalUseCase) Execute(ctx context.Context, proposalID uuid.UUID) error {
	return uc.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		proposal, err := tx.Proposals().FindByIDWithImages(ctx, proposalID)
		if err != nil {
			return err
		}

		if err := tx.Images().DeleteByProposalID(ctx, proposal.ID); err != nil {
			return err
		}
		return tx.Proposals().Delete(ctx, proposal.ID)
	})
}
