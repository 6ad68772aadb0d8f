package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

type NotificationRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewNotificationRepositoryAdapter(db sqlx.ExtContext) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{db: db}
}

func (r *NotificationRepositoryAdapter) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, client_id, freelancer_id, title, description, reason, trigger_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.ClientID, n.FreelancerID, n.Title, n.Description, string(n.Reason), n.TriggerID, n.SentAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать уведомление")
	}
	return nil
}

func (r *NotificationRepositoryAdapter) ListByRecipient(ctx context.Context, recipient entity.Recipient, limit, offset int) ([]*entity.Notification, error) {
	column := "freelancer_id"
	if recipient.Kind == valueobject.RecipientClient {
		column = "client_id"
	}

	// LIMIT NULL в PostgreSQL означает отсутствие ограничения.
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	var rows []notificationRow
	query := `
		SELECT id, client_id, freelancer_id, title, description, reason, trigger_id, sent_at
		FROM notifications WHERE ` + column + ` = $1
		ORDER BY sent_at DESC, id
		LIMIT $2 OFFSET $3
	`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, recipient.ID, lim, offset); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить уведомления")
	}

	result := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, &entity.Notification{
			ID:           row.ID,
			ClientID:     row.ClientID,
			FreelancerID: row.FreelancerID,
			Title:        row.Title,
			Description:  row.Description,
			Reason:       valueobject.NotificationReason(row.Reason),
			TriggerID:    row.TriggerID,
			SentAt:       row.SentAt,
		})
	}
	return result, nil
}

type notificationRow struct {
	ID           uuid.UUID  `db:"id"`
	ClientID     *uuid.UUID `db:"client_id"`
	FreelancerID *uuid.UUID `db:"freelancer_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	Reason       string     `db:"reason"`
	TriggerID    uuid.UUID  `db:"trigger_id"`
	SentAt       time.Time  `db:"sent_at"`
}
