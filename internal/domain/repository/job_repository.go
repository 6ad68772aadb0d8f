package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
)

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	// Close сохраняет закрытие работы, только если она ещё открыта. Иначе CONFLICT.
	Close(ctx context.Context, job *entity.Job) error
}

type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
}

type FreelancerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Freelancer, error)
}
