package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

const proposalColumns = `p.id, p.job_id, p.freelancer_id, p.description, p.duration, p.price,
		p.repos_links, p.status, p.approved_at, p.deadline, p.created_at, p.updated_at`

type ProposalRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewProposalRepositoryAdapter(db sqlx.ExtContext) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{db: db}
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, job_id, freelancer_id, description, duration, price, repos_links,
		status, approved_at, deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.JobID, proposal.FreelancerID, proposal.Description,
		proposal.Duration, proposal.Price, linksArray(proposal.ReposLinks),
		string(proposal.Status), proposal.ApprovedAt, proposal.Deadline,
		proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать предложение")
	}
	return nil
}

func (r *ProposalRepositoryAdapter) Update(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		UPDATE proposals SET job_id = $2, freelancer_id = $3, description = $4, duration = $5,
		price = $6, repos_links = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.JobID, proposal.FreelancerID, proposal.Description,
		proposal.Duration, proposal.Price, linksArray(proposal.ReposLinks), proposal.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}
	return expectAffected(res, repository.ProposalNotFound(proposal.ID))
}

func (r *ProposalRepositoryAdapter) Transition(ctx context.Context, proposal *entity.Proposal, from valueobject.ProposalStatus) error {
	query := `
		UPDATE proposals SET status = $2, approved_at = $3, deadline = $4, updated_at = $5
		WHERE id = $1 AND status = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		proposal.ID, string(proposal.Status), proposal.ApprovedAt, proposal.Deadline,
		proposal.UpdatedAt, string(from),
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус предложения")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить статус предложения")
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.FindByID(ctx, proposal.ID); err != nil {
		return err
	}
	return repository.StatusConflict("предложение уже рассмотрено")
}

func (r *ProposalRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить предложение")
	}
	return expectAffected(res, repository.ProposalNotFound(id))
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var p proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals p WHERE p.id = $1`
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ProposalNotFound(id)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложение")
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindByIDWithImages(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	proposal, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := selectImages(ctx, r.db, imageColumnsWithData, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	proposal.Images = images[id]
	return proposal, nil
}

func (r *ProposalRepositoryAdapter) List(ctx context.Context, filter repository.ProposalFilter) ([]*entity.ProposalView, error) {
	var rows []proposalViewRow
	query := `
		SELECT ` + proposalColumns + `,
		COALESCE(f.name, '') AS freelancer_name,
		COALESCE(j.title, '') AS job_title,
		COALESCE(c.name, '') AS client_name
		FROM proposals p
		LEFT JOIN freelancers f ON f.id = p.freelancer_id
		LEFT JOIN jobs j ON j.id = p.job_id
		LEFT JOIN clients c ON c.id = j.client_id
		WHERE ($1::uuid IS NULL OR p.job_id = $1)
		AND ($2::uuid IS NULL OR p.freelancer_id = $2)
		AND ($3::uuid IS NULL OR p.id = $3)
		ORDER BY p.created_at DESC, p.id
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, filter.JobID, filter.FreelancerID, filter.ProposalID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения")
	}

	views := make([]*entity.ProposalView, 0, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		views = append(views, &entity.ProposalView{
			Proposal:       *row.proposalRow.toEntity(),
			FreelancerName: row.FreelancerName,
			JobTitle:       row.JobTitle,
			ClientName:     row.ClientName,
		})
		ids = append(ids, row.ID)
	}

	if filter.WithImageMeta && len(ids) > 0 {
		images, err := selectImages(ctx, r.db, imageColumnsMeta, ids)
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			v.Images = images[v.ID]
		}
	}

	return views, nil
}

// linksArray не допускает NULL в repos_links: явный NULL не подменяется значением по умолчанию.
func linksArray(links []string) pq.StringArray {
	if links == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(links)
}

func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось определить число изменённых строк")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

type proposalRow struct {
	ID           uuid.UUID      `db:"id"`
	JobID        uuid.UUID      `db:"job_id"`
	FreelancerID uuid.UUID      `db:"freelancer_id"`
	Description  string         `db:"description"`
	Duration     int            `db:"duration"`
	Price        float64        `db:"price"`
	ReposLinks   pq.StringArray `db:"repos_links"`
	Status       string         `db:"status"`
	ApprovedAt   *time.Time     `db:"approved_at"`
	Deadline     *time.Time     `db:"deadline"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type proposalViewRow struct {
	proposalRow
	FreelancerName string `db:"freelancer_name"`
	JobTitle       string `db:"job_title"`
	ClientName     string `db:"client_name"`
}

func (r *proposalRow) toEntity() *entity.Proposal {
	return &entity.Proposal{
		ID:           r.ID,
		JobID:        r.JobID,
		FreelancerID: r.FreelancerID,
		Description:  r.Description,
		Duration:     r.Duration,
		Price:        r.Price,
		ReposLinks:   []string(r.ReposLinks),
		Status:       valueobject.ProposalStatus(r.Status),
		ApprovedAt:   r.ApprovedAt,
		Deadline:     r.Deadline,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
