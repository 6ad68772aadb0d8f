package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/http/middleware"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/handler"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// Handlers перечисляет хендлеры, которые подключает роутер.
type Handlers struct {
	Proposal     *handler.ProposalHandler
	Notification *handler.NotificationHandler
	Health       *handler.HealthHandler
	// WS может быть nil, тогда /api/ws не регистрируется.
	WS *handler.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	// WebSocket живёт дольше любого запроса, поэтому без RequestTimeout.
	if h.WS != nil {
		r.GET("/api/ws", h.WS.Handle)
	}

	api := r.Group("/api")
	api.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Чтение открыто.
	api.GET("/proposals", h.Proposal.ListProposals)
	api.GET("/proposals/:id", middleware.UUIDValidator("id"), h.Proposal.GetProposal)
	api.GET("/proposals/:id/images/:imageId", middleware.UUIDValidator("id", "imageId"), h.Proposal.GetProposalImage)
	api.GET("/jobs/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.ListJobProposals)
	api.GET("/freelancers/:id/proposals", middleware.UUIDValidator("id"), h.Proposal.ListFreelancerProposals)
	api.GET("/clients/:id/notifications", middleware.UUIDValidator("id"), h.Notification.ListClientNotifications)
	api.GET("/freelancers/:id/notifications", middleware.UUIDValidator("id"), h.Notification.ListFreelancerNotifications)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	protected.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		protected.POST("/proposals", h.Proposal.CreateProposal)
		protected.PUT("/proposals/:id", middleware.UUIDValidator("id"), h.Proposal.UpdateProposal)
		protected.DELETE("/proposals/:id", middleware.UUIDValidator("id"), h.Proposal.DeleteProposal)
		protected.POST("/proposals/:id/accept", middleware.UUIDValidator("id"), h.Proposal.AcceptProposal)
		protected.POST("/proposals/:id/reject", middleware.UUIDValidator("id"), h.Proposal.RejectProposal)
	}

	return r
}
