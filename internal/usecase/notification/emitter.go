// Package notification формирует уведомления о событиях предложений и доставляет их подписчикам.
//
// Уведомление записывается в транзакции вызывающей команды (Stage) и рассылается
// по WebSocket только после её фиксации (Publish).
package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/goroutine"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// Publisher доставляет зафиксированное уведомление живым подписчикам.
type Publisher interface {
	Publish(ctx context.Context, n *entity.Notification) error
}

// publishTimeout ограничивает доставку одной пачки уведомлений.
const publishTimeout = 5 * time.Second

type Emitter struct {
	reasons   ReasonMapping
	publisher Publisher
	now       func() time.Time
}

// NewEmitter создаёт эмиттер. publisher может быть nil: тогда уведомления только сохраняются.
func NewEmitter(reasons ReasonMapping, publisher Publisher) *Emitter {
	if reasons == nil {
		reasons = DefaultReasonMapping()
	}
	return &Emitter{
		reasons:   reasons,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени.
func (e *Emitter) WithClock(now func() time.Time) *Emitter {
	e.now = now
	return e
}

// Stage добавляет уведомление в репозиторий текущей транзакции.
func (e *Emitter) Stage(ctx context.Context, repo repository.NotificationRepository, ev Event, to entity.Recipient, subject Subject) (*entity.Notification, error) {
	reason, err := e.reasons.Reason(ev)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сформировать уведомление")
	}
	title, description, err := render(ev, to.Kind, subject)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сформировать уведомление")
	}

	n, err := entity.NewNotification(to, title, description, reason, subject.JobID, e.now())
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Publish рассылает уведомления асинхронно. Ошибки доставки только логируются:
// уведомления уже сохранены и доступны через список.
func (e *Emitter) Publish(notifications ...*entity.Notification) {
	if e.publisher == nil || len(notifications) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		defer cancel()

		for _, n := range notifications {
			if err := e.publisher.Publish(ctx, n); err != nil {
				logger.WithComponent("notification").WithFields(logrus.Fields{
					"notification_id": n.ID,
					"recipient":       n.Recipient().Key(),
					"reason":          n.Reason,
				}).WithError(err).Warn("Не удалось доставить уведомление")
			}
		}
	})
}
