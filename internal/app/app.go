// Package app собирает зависимости сервиса предложений в готовый HTTP движок.
package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/http/router"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/handler"
	"github.com/ignatzorin/marketplace-backend/internal/service"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/notification"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/proposal"
	"github.com/ignatzorin/marketplace-backend/internal/ws"
)

type App struct {
	Engine *gin.Engine
	Hub    *ws.Hub
	Tokens *service.TokenManager
}

// Option меняет сборку приложения, используется в тестах.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock подменяет часы use case'ов и уведомлений.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New связывает хранилище, use case'ы, хаб и хендлеры. Хаб нужно запустить отдельно через Hub.Run.
func New(cfg *config.Config, store repository.Store, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	reasons, err := notification.NewReasonMapping(cfg.RejectNotificationReason)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	tokens := service.NewTokenManager(cfg.JWTSecret)
	hub := ws.NewHub()

	emitter := notification.NewEmitter(reasons, ws.NewNotificationPublisher(hub))
	if o.now != nil {
		emitter = emitter.WithClock(o.now)
	}

	proposals := handler.NewProposalHandler(handler.ProposalUseCases{
		Create:           proposal.NewCreateProposalUseCase(store, emitter, o.now),
		Update:           proposal.NewUpdateProposalUseCase(store, o.now),
		Delete:           proposal.NewDeleteProposalUseCase(store),
		Review:           proposal.NewReviewProposalUseCase(store, emitter, o.now),
		Get:              proposal.NewGetProposalUseCase(store),
		List:             proposal.NewListProposalsUseCase(store),
		ListByJob:        proposal.NewListJobProposalsUseCase(store),
		ListByFreelancer: proposal.NewListFreelancerProposalsUseCase(store),
		GetImage:         proposal.NewGetProposalImageUseCase(store),
	})

	engine := router.SetupRouter(cfg, router.Handlers{
		Proposal:     proposals,
		Notification: handler.NewNotificationHandler(notification.NewListRecipientNotificationsUseCase(store)),
		Health:       handler.NewHealthHandler(store, cfg.StoreDriver),
		WS:           handler.NewWSHandler(hub, tokens, cfg.AllowedOrigins),
	}, tokens)

	return &App{Engine: engine, Hub: hub, Tokens: tokens}, nil
}
