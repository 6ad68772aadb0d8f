package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

type Proposal struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	FreelancerID uuid.UUID
	Description  string
	// Срок выполнения в днях.
	Duration   int
	Price      float64
	ReposLinks []string
	Status     valueobject.ProposalStatus
	ApprovedAt *time.Time
	Deadline   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Images равен nil, если вложений нет или они не загружались.
	Images []ProposalImage
}

type ProposalImage struct {
	ID         uuid.UUID
	ProposalID uuid.UUID
	FileName   string
	Size       int64
	Data       []byte
	CreatedAt  time.Time
}

// ProposalView дополняет предложение именами связанных сущностей для отображения.
type ProposalView struct {
	Proposal
	FreelancerName string
	JobTitle       string
	ClientName     string
}

func NewProposal(jobID, freelancerID uuid.UUID, description string, duration int, price float64, reposLinks []string, now time.Time) (*Proposal, error) {
	if err := validateTerms(description, duration, price); err != nil {
		return nil, err
	}

	return &Proposal{
		ID:           uuid.New(),
		JobID:        jobID,
		FreelancerID: freelancerID,
		Description:  description,
		Duration:     duration,
		Price:        price,
		ReposLinks:   normalizeLinks(reposLinks),
		Status:       valueobject.ProposalStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// normalizeLinks возвращает пустой список вместо nil: в хранилище список ссылок не бывает NULL.
func normalizeLinks(links []string) []string {
	if links == nil {
		return []string{}
	}
	return links
}

func validateTerms(description string, duration int, price float64) error {
	if description == "" {
		return apperror.New(apperror.ErrCodeValidation, "описание предложения обязательно")
	}
	if duration <= 0 {
		return apperror.New(apperror.ErrCodeValidation, "срок выполнения должен быть положительным")
	}
	if price <= 0 {
		return apperror.New(apperror.ErrCodeValidation, "предложенная цена должна быть положительной")
	}
	return nil
}

// AttachImages заменяет набор вложений. Пустой набор оставляет предложение без изображений.
func (p *Proposal) AttachImages(images []ProposalImage, now time.Time) {
	if len(images) == 0 {
		p.Images = nil
		return
	}

	p.Images = make([]ProposalImage, len(images))
	for i, img := range images {
		img.ID = uuid.New()
		img.ProposalID = p.ID
		img.CreatedAt = now
		if img.Size == 0 {
			img.Size = int64(len(img.Data))
		}
		p.Images[i] = img
	}
}

// Revise перезаписывает изменяемые поля. Рассмотренное предложение менять нельзя.
func (p *Proposal) Revise(jobID, freelancerID uuid.UUID, description string, duration int, price float64, reposLinks []string, now time.Time) error {
	if p.Status.IsTerminal() {
		return apperror.New(apperror.ErrCodeBadRequest, "рассмотренное предложение нельзя изменить")
	}
	if err := validateTerms(description, duration, price); err != nil {
		return err
	}

	p.JobID = jobID
	p.FreelancerID = freelancerID
	p.Description = description
	p.Duration = duration
	p.Price = price
	p.ReposLinks = normalizeLinks(reposLinks)
	p.UpdatedAt = now
	return nil
}

// Approve переводит предложение в approved и считает дедлайн от момента одобрения.
func (p *Proposal) Approve(now time.Time) error {
	if !p.IsPending() {
		return apperror.New(apperror.ErrCodeBadRequest, "можно принять только ожидающее предложение")
	}
	deadline := now.AddDate(0, 0, p.Duration)
	p.Status = valueobject.ProposalStatusApproved
	p.ApprovedAt = &now
	p.Deadline = &deadline
	p.UpdatedAt = now
	return nil
}

func (p *Proposal) Reject(now time.Time) error {
	if !p.IsPending() {
		return apperror.New(apperror.ErrCodeBadRequest, "можно отклонить только ожидающее предложение")
	}
	p.Status = valueobject.ProposalStatusRejected
	p.UpdatedAt = now
	return nil
}

func (p *Proposal) IsPending() bool {
	return p.Status == valueobject.ProposalStatusPending
}
