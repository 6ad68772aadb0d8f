package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

type Job struct {
	ID                   uuid.UUID
	ClientID             uuid.UUID
	Title                string
	Status               valueobject.JobStatus
	AcceptedFreelancerID *uuid.UUID
	ApprovedAt           *time.Time
	CreatedAt            time.Time
}

// Close закрывает работу за выбранным фрилансером. Переход open → closed происходит один раз.
func (j *Job) Close(freelancerID uuid.UUID, now time.Time) error {
	if !j.IsOpen() {
		return apperror.New(apperror.ErrCodeConflict, "работа уже закрыта")
	}
	j.Status = valueobject.JobStatusClosed
	j.AcceptedFreelancerID = &freelancerID
	j.ApprovedAt = &now
	return nil
}

func (j *Job) IsOpen() bool {
	return j.Status == valueobject.JobStatusOpen
}

type Client struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Freelancer struct {
	ID        uuid.UUID
	Name      string
	Title     string
	CreatedAt time.Time
}
