package dto

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
)

// ProposalForm описывает multipart форму создания и изменения предложения.
type ProposalForm struct {
	JobID        string                  `form:"job_id" binding:"required,uuid"`
	FreelancerID string                  `form:"freelancer_id" binding:"required,uuid"`
	Description  string                  `form:"description" binding:"required"`
	Duration     int                     `form:"duration" binding:"required,gt=0"`
	Price        float64                 `form:"price" binding:"required,gt=0"`
	ReposLinks   []string                `form:"repos_links"`
	Images       []*multipart.FileHeader `form:"images"`
}

type ProposalImageResponse struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"file_name"`
	Size     int64     `json:"size"`
	URL      string    `json:"url"`
}

type ProposalResponse struct {
	ID           uuid.UUID               `json:"id"`
	JobID        uuid.UUID               `json:"job_id"`
	FreelancerID uuid.UUID               `json:"freelancer_id"`
	Description  string                  `json:"description"`
	Duration     int                     `json:"duration"`
	Price        float64                 `json:"price"`
	ReposLinks   []string                `json:"repos_links"`
	Status       string                  `json:"status"`
	ApprovedAt   *time.Time              `json:"approved_at"`
	Deadline     *time.Time              `json:"deadline"`
	Images       []ProposalImageResponse `json:"images"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ProposalViewResponse дополняет предложение именами связанных сущностей.
type ProposalViewResponse struct {
	ProposalResponse
	FreelancerName string `json:"freelancer_name"`
	JobTitle       string `json:"job_title"`
	ClientName     string `json:"client_name"`
}

func ToProposalResponse(proposal *entity.Proposal) ProposalResponse {
	links := proposal.ReposLinks
	if links == nil {
		links = []string{}
	}

	// Без вложений поле images равно null.
	var images []ProposalImageResponse
	for _, img := range proposal.Images {
		images = append(images, ProposalImageResponse{
			ID:       img.ID,
			FileName: img.FileName,
			Size:     img.Size,
			URL:      ImageURL(proposal.ID, img.ID),
		})
	}

	return ProposalResponse{
		ID:           proposal.ID,
		JobID:        proposal.JobID,
		FreelancerID: proposal.FreelancerID,
		Description:  proposal.Description,
		Duration:     proposal.Duration,
		Price:        proposal.Price,
		ReposLinks:   links,
		Status:       string(proposal.Status),
		ApprovedAt:   proposal.ApprovedAt,
		Deadline:     proposal.Deadline,
		Images:       images,
		CreatedAt:    proposal.CreatedAt,
		UpdatedAt:    proposal.UpdatedAt,
	}
}

func ToProposalViewResponse(view *entity.ProposalView) ProposalViewResponse {
	return ProposalViewResponse{
		ProposalResponse: ToProposalResponse(&view.Proposal),
		FreelancerName:   view.FreelancerName,
		JobTitle:         view.JobTitle,
		ClientName:       view.ClientName,
	}
}

func ToProposalViewResponses(views []*entity.ProposalView) []ProposalViewResponse {
	responses := make([]ProposalViewResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, ToProposalViewResponse(view))
	}
	return responses
}

// ImageURL возвращает адрес, по которому отдаётся содержимое изображения.
func ImageURL(proposalID, imageID uuid.UUID) string {
	return fmt.Sprintf("/api/proposals/%s/images/%s", proposalID, imageID)
}

// ReviewResponse описывает итог принятия или отклонения предложения.
type ReviewResponse struct {
	Proposal ProposalResponse `json:"proposal"`
	Job      *JobResponse     `json:"job,omitempty"`
}

type JobResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ClientID             uuid.UUID  `json:"client_id"`
	Title                string     `json:"title"`
	Status               string     `json:"status"`
	AcceptedFreelancerID *uuid.UUID `json:"accepted_freelancer_id"`
	ApprovedAt           *time.Time `json:"approved_at"`
}

func ToJobResponse(job *entity.Job) *JobResponse {
	if job == nil {
		return nil
	}
	return &JobResponse{
		ID:                   job.ID,
		ClientID:             job.ClientID,
		Title:                job.Title,
		Status:               string(job.Status),
		AcceptedFreelancerID: job.AcceptedFreelancerID,
		ApprovedAt:           job.ApprovedAt,
	}
}
