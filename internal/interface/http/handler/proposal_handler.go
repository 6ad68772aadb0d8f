package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/dto"
	"github.com/ignatzorin/marketplace-backend/internal/interface/http/response"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/proposal"
	"github.com/ignatzorin/marketplace-backend/internal/validation"
)

// ProposalUseCases собирает use case'ы предложений для хендлера.
type ProposalUseCases struct {
	Create           *proposal.CreateProposalUseCase
	Update           *proposal.UpdateProposalUseCase
	Delete           *proposal.DeleteProposalUseCase
	Review           *proposal.ReviewProposalUseCase
	Get              *proposal.GetProposalUseCase
	List             *proposal.ListProposalsUseCase
	ListByJob        *proposal.ListJobProposalsUseCase
	ListByFreelancer *proposal.ListFreelancerProposalsUseCase
	GetImage         *proposal.GetProposalImageUseCase
}

type ProposalHandler struct {
	uc ProposalUseCases
}

func NewProposalHandler(uc ProposalUseCases) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// ListProposals обрабатывает GET /api/proposals.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	views, err := h.uc.List.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalViewResponses(views))
}

// GetProposal обрабатывает GET /api/proposals/:id.
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	proposalID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.uc.Get.Execute(c.Request.Context(), proposalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalViewResponse(view))
}

// ListJobProposals обрабатывает GET /api/jobs/:id/proposals.
func (h *ProposalHandler) ListJobProposals(c *gin.Context) {
	jobID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.uc.ListByJob.Execute(c.Request.Context(), jobID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalViewResponses(views))
}

// ListFreelancerProposals обрабатывает GET /api/freelancers/:id/proposals.
func (h *ProposalHandler) ListFreelancerProposals(c *gin.Context) {
	freelancerID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.uc.ListByFreelancer.Execute(c.Request.Context(), freelancerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProposalViewResponses(views))
}

// GetProposalImage отдаёт содержимое изображения. Тип определяется по сигнатуре файла.
func (h *ProposalHandler) GetProposalImage(c *gin.Context) {
	proposalID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	imageID, err := uuidParam(c, "imageId")
	if err != nil {
		response.Error(c, err)
		return
	}

	img, err := h.uc.GetImage.Execute(c.Request.Context(), proposalID, imageID)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "application/octet-stream"
	if kind, err := filetype.Match(img.Data); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}

	if disposition := mime.FormatMediaType("inline", map[string]string{"filename": img.FileName}); disposition != "" {
		c.Header("Content-Disposition", disposition)
	}
	c.Data(http.StatusOK, contentType, img.Data)
}

// CreateProposal обрабатывает POST /api/proposals (multipart/form-data).
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	form, err := bindProposalForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.uc.Create.Execute(c.Request.Context(), proposal.CreateProposalInput{
		JobID:        form.jobID,
		FreelancerID: form.freelancerID,
		Description:  form.Description,
		Duration:     form.Duration,
		Price:        form.Price,
		ReposLinks:   form.ReposLinks,
		Images:       form.attachments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProposalResponse(created), "предложение отправлено")
}

// UpdateProposal обрабатывает PUT /api/proposals/:id. Набор изображений заменяется целиком.
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	proposalID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	form, err := bindProposalForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.uc.Update.Execute(c.Request.Context(), proposal.UpdateProposalInput{
		ProposalID:   proposalID,
		JobID:        form.jobID,
		FreelancerID: form.freelancerID,
		Description:  form.Description,
		Duration:     form.Duration,
		Price:        form.Price,
		ReposLinks:   form.ReposLinks,
		Images:       form.attachments,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToProposalResponse(updated), "предложение обновлено")
}

// DeleteProposal обрабатывает DELETE /api/proposals/:id.
func (h *ProposalHandler) DeleteProposal(c *gin.Context) {
	proposalID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), proposalID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AcceptProposal обрабатывает POST /api/proposals/:id/accept.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	h.review(c, proposal.DecisionAccept, "предложение принято")
}

// RejectProposal обрабатывает POST /api/proposals/:id/reject.
func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	h.review(c, proposal.DecisionReject, "предложение отклонено")
}

func (h *ProposalHandler) review(c *gin.Context, decision proposal.Decision, message string) {
	proposalID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.uc.Review.Execute(c.Request.Context(), proposal.ReviewProposalInput{
		ProposalID: proposalID,
		Decision:   decision,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, dto.ReviewResponse{
		Proposal: dto.ToProposalResponse(result.Proposal),
		Job:      dto.ToJobResponse(result.Job),
	}, message)
}

type boundProposalForm struct {
	dto.ProposalForm
	jobID        uuid.UUID
	freelancerID uuid.UUID
	attachments  []attachment.Attachment
}

func bindProposalForm(c *gin.Context) (*boundProposalForm, error) {
	var form dto.ProposalForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные данные запроса")
	}
	if err := validation.ValidateProposalDescription(form.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeBadRequest, err.Error())
	}
	if err := validation.ValidateReposLinks(form.ReposLinks); err != nil {
		return nil, apperror.New(apperror.ErrCodeBadRequest, err.Error())
	}

	attachments, err := readAttachments(form.Images)
	if err != nil {
		return nil, err
	}

	return &boundProposalForm{
		ProposalForm: form,
		// Формат UUID проверен правилом binding:"uuid".
		jobID:        uuid.MustParse(form.JobID),
		freelancerID: uuid.MustParse(form.FreelancerID),
		attachments:  attachments,
	}, nil
}
