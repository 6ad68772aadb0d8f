package repository

import (
	"context"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
)

// NotificationRepository только добавляет и читает: уведомления не изменяются и не удаляются.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByRecipient(ctx context.Context, recipient entity.Recipient, limit, offset int) ([]*entity.Notification, error)
}
