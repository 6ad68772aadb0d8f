package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

type JobRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewJobRepositoryAdapter(db sqlx.ExtContext) *JobRepositoryAdapter {
	return &JobRepositoryAdapter{db: db}
}

func (r *JobRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	row, err := common.GetByID[jobRow](ctx, r.db, "jobs",
		"id, client_id, title, status, accepted_freelancer_id, approved_at, created_at",
		id, repository.JobNotFound(id))
	if err != nil {
		return nil, wrapLookup(err, "не удалось получить работу")
	}
	return row.toEntity(), nil
}

func (r *JobRepositoryAdapter) Close(ctx context.Context, job *entity.Job) error {
	query := `
		UPDATE jobs SET status = $2, accepted_freelancer_id = $3, approved_at = $4
		WHERE id = $1 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		job.ID, string(job.Status), job.AcceptedFreelancerID, job.ApprovedAt, string(valueobject.JobStatusOpen))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось закрыть работу")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось закрыть работу")
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, job.ID); err != nil {
		return err
	}
	return repository.StatusConflict("работа уже закрыта")
}

type ClientRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewClientRepositoryAdapter(db sqlx.ExtContext) *ClientRepositoryAdapter {
	return &ClientRepositoryAdapter{db: db}
}

func (r *ClientRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	row, err := common.GetByID[clientRow](ctx, r.db, "clients", "id, name, created_at", id, repository.ClientNotFound(id))
	if err != nil {
		return nil, wrapLookup(err, "не удалось получить клиента")
	}
	return &entity.Client{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

type FreelancerRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewFreelancerRepositoryAdapter(db sqlx.ExtContext) *FreelancerRepositoryAdapter {
	return &FreelancerRepositoryAdapter{db: db}
}

func (r *FreelancerRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Freelancer, error) {
	row, err := common.GetByID[freelancerRow](ctx, r.db, "freelancers", "id, name, title, created_at", id, repository.FreelancerNotFound(id))
	if err != nil {
		return nil, wrapLookup(err, "не удалось получить фрилансера")
	}
	return &entity.Freelancer{ID: row.ID, Name: row.Name, Title: row.Title, CreatedAt: row.CreatedAt}, nil
}

// wrapLookup оставляет NOT_FOUND как есть, остальные ошибки помечает как ошибки БД.
func wrapLookup(err error, message string) error {
	if apperror.IsNotFound(err) {
		return err
	}
	return apperror.Wrap(err, apperror.ErrCodeDatabaseError, message)
}

type jobRow struct {
	ID                   uuid.UUID  `db:"id"`
	ClientID             uuid.UUID  `db:"client_id"`
	Title                string     `db:"title"`
	Status               string     `db:"status"`
	AcceptedFreelancerID *uuid.UUID `db:"accepted_freelancer_id"`
	ApprovedAt           *time.Time `db:"approved_at"`
	CreatedAt            time.Time  `db:"created_at"`
}

func (r *jobRow) toEntity() *entity.Job {
	return &entity.Job{
		ID:                   r.ID,
		ClientID:             r.ClientID,
		Title:                r.Title,
		Status:               valueobject.JobStatus(r.Status),
		AcceptedFreelancerID: r.AcceptedFreelancerID,
		ApprovedAt:           r.ApprovedAt,
		CreatedAt:            r.CreatedAt,
	}
}

type clientRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type freelancerRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}
