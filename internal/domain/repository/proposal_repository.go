package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	// Update сохраняет изменяемые поля, статус не трогает.
	Update(ctx context.Context, proposal *entity.Proposal) error
	// Transition сохраняет статус, время одобрения и дедлайн, только если текущий статус равен from.
	// Иначе возвращает CONFLICT.
	Transition(ctx context.Context, proposal *entity.Proposal, from valueobject.ProposalStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	FindByIDWithImages(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	List(ctx context.Context, filter ProposalFilter) ([]*entity.ProposalView, error)
}

// ProposalFilter задаёт выборку и явный набор связей для подгрузки.
type ProposalFilter struct {
	JobID        *uuid.UUID
	FreelancerID *uuid.UUID
	ProposalID   *uuid.UUID
	// WithImageMeta подгружает метаданные изображений без содержимого.
	WithImageMeta bool
}

type ProposalImageRepository interface {
	CreateBatch(ctx context.Context, images []entity.ProposalImage) error
	DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error
	FindByID(ctx context.Context, proposalID, imageID uuid.UUID) (*entity.ProposalImage, error)
}
