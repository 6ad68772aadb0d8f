package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/dto"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/response"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/notification"
)

type NotificationHandler struct {
	listUC *notification.ListRecipientNotificationsUseCase
}

func NewNotificationHandler(listUC *notification.ListRecipientNotificationsUseCase) *NotificationHandler {
	return &NotificationHandler{listUC: listUC}
}

// ListClientNotifications обрабатывает GET /api/clients/:id/notifications.
func (h *NotificationHandler) ListClientNotifications(c *gin.Context) {
	clientID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, entity.ClientRecipient(clientID))
}

// ListFreelancerNotifications обрабатывает GET /api/freelancers/:id/notifications.
func (h *NotificationHandler) ListFreelancerNotifications(c *gin.Context) {
	freelancerID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	h.list(c, entity.FreelancerRecipient(freelancerID))
}

func (h *NotificationHandler) list(c *gin.Context, to entity.Recipient) {
	items, err := h.listUC.Execute(c.Request.Context(), notification.ListRecipientNotificationsInput{
		Recipient: to,
		Limit:     parseIntQuery(c, "limit", notification.DefaultPageSize),
		Offset:    parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationResponses(items))
}
