package persistence

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

// Store реализует хранилище поверх PostgreSQL. Вне WithinTx репозитории работают напрямую с пулом.
type Store struct {
	db *sqlx.DB
	repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, repositories: repositories{ext: db}}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	err := common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(ctx, repositories{ext: tx})
	})
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "транзакция прервана")
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось зафиксировать транзакцию")
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// repositories привязывает адаптеры к соединению или транзакции.
type repositories struct {
	ext sqlx.ExtContext
}

func (r repositories) Proposals() repository.ProposalRepository {
	return &ProposalRepositoryAdapter{db: r.ext}
}

func (r repositories) Images() repository.ProposalImageRepository {
	return &ProposalImageRepositoryAdapter{db: r.ext}
}

func (r repositories) Jobs() repository.JobRepository {
	return &JobRepositoryAdapter{db: r.ext}
}

func (r repositories) Clients() repository.ClientRepository {
	return &ClientRepositoryAdapter{db: r.ext}
}

func (r repositories) Freelancers() repository.FreelancerRepository {
	return &FreelancerRepositoryAdapter{db: r.ext}
}

func (r repositories) Notifications() repository.NotificationRepository {
	return &NotificationRepositoryAdapter{db: r.ext}
}
