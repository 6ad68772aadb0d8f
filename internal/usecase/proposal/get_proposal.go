package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

type GetProposalUseCase struct {
	store repository.Repositories
}

func NewGetProposalUseCase(store repository.Repositories) *GetProposalUseCase {
	return &GetProposalUseCase{store: store}
}

func (uc *GetProposalUseCase) Execute(ctx context.Context, proposalID uuid.UUID) (*entity.ProposalView, error) {
	views, err := uc.store.Proposals().List(ctx, repository.ProposalFilter{
		ProposalID:    &proposalID,
		WithImageMeta: true,
	})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, repository.ProposalNotFound(proposalID)
	}
	return views[0], nil
}

type ListProposalsUseCase struct {
	store repository.Repositories
}

func NewListProposalsUseCase(store repository.Repositories) *ListProposalsUseCase {
	return &ListProposalsUseCase{store: store}
}

// Execute возвращает все предложения. У выборки нет опорной сущности, поэтому пустой список не ошибка.
func (uc *ListProposalsUseCase) Execute(ctx context.Context) ([]*entity.ProposalView, error) {
	views, err := uc.store.Proposals().List(ctx, repository.ProposalFilter{WithImageMeta: true})
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*entity.ProposalView{}
	}
	return views, nil
}

type ListJobProposalsUseCase struct {
	store repository.Repositories
}

func NewListJobProposalsUseCase(store repository.Repositories) *ListJobProposalsUseCase {
	return &ListJobProposalsUseCase{store: store}
}

// Execute различает отсутствующую работу (NOT_FOUND) и работу без предложений (EMPTY_RESULT).
func (uc *ListJobProposalsUseCase) Execute(ctx context.Context, jobID uuid.UUID) ([]*entity.ProposalView, error) {
	if _, err := uc.store.Jobs().FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	views, err := uc.store.Proposals().List(ctx, repository.ProposalFilter{JobID: &jobID, WithImageMeta: true})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.EmptyResult("на эту работу ещё нет предложений")
	}
	return views, nil
}

type ListFreelancerProposalsUseCase struct {
	store repository.Repositories
}

func NewListFreelancerProposalsUseCase(store repository.Repositories) *ListFreelancerProposalsUseCase {
	return &ListFreelancerProposalsUseCase{store: store}
}

// Execute различает отсутствующего фрилансера (NOT_FOUND) и фрилансера без предложений (EMPTY_RESULT).
func (uc *ListFreelancerProposalsUseCase) Execute(ctx context.Context, freelancerID uuid.UUID) ([]*entity.ProposalView, error) {
	if _, err := uc.store.Freelancers().FindByID(ctx, freelancerID); err != nil {
		return nil, err
	}

	views, err := uc.store.Proposals().List(ctx, repository.ProposalFilter{FreelancerID: &freelancerID, WithImageMeta: true})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperror.EmptyResult("фрилансер ещё не отправлял предложений")
	}
	return views, nil
}

type GetProposalImageUseCase struct {
	store repository.Repositories
}

func NewGetProposalImageUseCase(store repository.Repositories) *GetProposalImageUseCase {
	return &GetProposalImageUseCase{store: store}
}

// Execute возвращает изображение вместе с содержимым.
func (uc *GetProposalImageUseCase) Execute(ctx context.Context, proposalID, imageID uuid.UUID) (*entity.ProposalImage, error) {
	if _, err := uc.store.Proposals().FindByID(ctx, proposalID); err != nil {
		return nil, err
	}
	return uc.store.Images().FindByID(ctx, proposalID, imageID)
}
