package notification

import (
	"context"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListRecipientNotificationsInput struct {
	Recipient entity.Recipient
	Limit     int
	Offset    int
}

type ListRecipientNotificationsUseCase struct {
	store repository.Repositories
}

func NewListRecipientNotificationsUseCase(store repository.Repositories) *ListRecipientNotificationsUseCase {
	return &ListRecipientNotificationsUseCase{store: store}
}

// Execute возвращает уведомления получателя, новые первыми.
// Пустой список не является ошибкой, для отсутствующего получателя возвращается NOT_FOUND.
func (uc *ListRecipientNotificationsUseCase) Execute(ctx context.Context, input ListRecipientNotificationsInput) ([]*entity.Notification, error) {
	switch input.Recipient.Kind {
	case valueobject.RecipientClient:
		if _, err := uc.store.Clients().FindByID(ctx, input.Recipient.ID); err != nil {
			return nil, err
		}
	default:
		if _, err := uc.store.Freelancers().FindByID(ctx, input.Recipient.ID); err != nil {
			return nil, err
		}
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	notifications, err := uc.store.Notifications().ListByRecipient(ctx, input.Recipient, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*entity.Notification{}
	}
	return notifications, nil
}
