package repository

import (
	"github.com/google/uuid"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// Виды сущностей в ошибках NOT_FOUND.
const (
	KindProposal   = "proposal"
	KindImage      = "proposal_image"
	KindJob        = "job"
	KindClient     = "client"
	KindFreelancer = "freelancer"
)

func ProposalNotFound(id uuid.UUID) *apperror.AppError {
	return apperror.NotFound(KindProposal, "предложение не найдено", id)
}

func ImageNotFound(id uuid.UUID) *apperror.AppError {
	return apperror.NotFound(KindImage, "изображение не найдено", id)
}

func JobNotFound(id uuid.UUID) *apperror.AppError {
	return apperror.NotFound(KindJob, "работа не найдена", id)
}

func ClientNotFound(id uuid.UUID) *apperror.AppError {
	return apperror.NotFound(KindClient, "клиент не найден", id)
}

func FreelancerNotFound(id uuid.UUID) *apperror.AppError {
	return apperror.NotFound(KindFreelancer, "фрилансер не найден", id)
}

// StatusConflict возвращается, когда сравнение статуса при записи не совпало.
func StatusConflict(message string) *apperror.AppError {
	return apperror.New(apperror.ErrCodeConflict, message)
}
