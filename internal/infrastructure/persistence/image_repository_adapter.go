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
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/repository/common"
)

const (
	imageColumnsMeta     = `id, proposal_id, file_name, size, created_at`
	imageColumnsWithData = imageColumnsMeta + `, data`
	imageBatchSize       = 20
)

type ProposalImageRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewProposalImageRepositoryAdapter(db sqlx.ExtContext) *ProposalImageRepositoryAdapter {
	return &ProposalImageRepositoryAdapter{db: db}
}

func (r *ProposalImageRepositoryAdapter) CreateBatch(ctx context.Context, images []entity.ProposalImage) error {
	inserter := common.NewBatchInserter(r.db,
		`INSERT INTO proposal_images (id, proposal_id, file_name, size, data, created_at)`, 6, imageBatchSize)

	for _, img := range images {
		if err := inserter.Add(ctx, img.ID, img.ProposalID, img.FileName, img.Size, img.Data, img.CreatedAt); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить изображения")
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить изображения")
	}
	return nil
}

func (r *ProposalImageRepositoryAdapter) DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM proposal_images WHERE proposal_id = $1`, proposalID); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить изображения")
	}
	return nil
}

func (r *ProposalImageRepositoryAdapter) FindByID(ctx context.Context, proposalID, imageID uuid.UUID) (*entity.ProposalImage, error) {
	var row imageRow
	query := `SELECT ` + imageColumnsWithData + ` FROM proposal_images WHERE id = $1 AND proposal_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &row, query, imageID, proposalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ImageNotFound(imageID)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить изображение")
	}
	img := row.toEntity()
	return &img, nil
}

// selectImages загружает изображения нескольких предложений одним запросом, сгруппированные по предложению.
func selectImages(ctx context.Context, q sqlx.QueryerContext, columns string, proposalIDs []uuid.UUID) (map[uuid.UUID][]entity.ProposalImage, error) {
	ids := make([]string, len(proposalIDs))
	for i, id := range proposalIDs {
		ids[i] = id.String()
	}

	var rows []imageRow
	query := `SELECT ` + columns + ` FROM proposal_images
		WHERE proposal_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	if err := sqlx.SelectContext(ctx, q, &rows, query, pq.Array(ids)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить изображения")
	}

	grouped := make(map[uuid.UUID][]entity.ProposalImage)
	for _, row := range rows {
		grouped[row.ProposalID] = append(grouped[row.ProposalID], row.toEntity())
	}
	return grouped, nil
}

type imageRow struct {
	ID         uuid.UUID `db:"id"`
	ProposalID uuid.UUID `db:"proposal_id"`
	FileName   string    `db:"file_name"`
	Size       int64     `db:"size"`
	Data       []byte    `db:"data"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r imageRow) toEntity() entity.ProposalImage {
	return entity.ProposalImage{
		ID:         r.ID,
		ProposalID: r.ProposalID,
		FileName:   r.FileName,
		Size:       r.Size,
		Data:       r.Data,
		CreatedAt:  r.CreatedAt,
	}
}
