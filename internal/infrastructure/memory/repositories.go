package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
)

type proposalRepo struct {
	scope *scope
}

func (r *proposalRepo) Create(ctx context.Context, p *entity.Proposal) error {
	return r.scope.write(func(st *state) error {
		st.proposals[p.ID] = stripImages(p)
		return nil
	})
}

func (r *proposalRepo) Update(ctx context.Context, p *entity.Proposal) error {
	return r.scope.write(func(st *state) error {
		current, ok := st.proposals[p.ID]
		if !ok {
			return repository.ProposalNotFound(p.ID)
		}
		next := stripImages(p)
		next.Status = current.Status
		next.ApprovedAt = current.ApprovedAt
		next.Deadline = current.Deadline
		next.CreatedAt = current.CreatedAt
		st.proposals[p.ID] = next
		return nil
	})
}

func (r *proposalRepo) Transition(ctx context.Context, p *entity.Proposal, from valueobject.ProposalStatus) error {
	return r.scope.write(func(st *state) error {
		current, ok := st.proposals[p.ID]
		if !ok {
			return repository.ProposalNotFound(p.ID)
		}
		if current.Status != from {
			return repository.StatusConflict("предложение уже рассмотрено")
		}
		current.Status = p.Status
		current.ApprovedAt = p.ApprovedAt
		current.Deadline = p.Deadline
		current.UpdatedAt = p.UpdatedAt
		st.proposals[p.ID] = current
		return nil
	})
}

func (r *proposalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.scope.write(func(st *state) error {
		if _, ok := st.proposals[id]; !ok {
			return repository.ProposalNotFound(id)
		}
		delete(st.proposals, id)
		for imgID, img := range st.images {
			if img.ProposalID == id {
				delete(st.images, imgID)
			}
		}
		return nil
	})
}

func (r *proposalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var found *entity.Proposal
	err := r.scope.read(func(st *state) error {
		p, ok := st.proposals[id]
		if !ok {
			return repository.ProposalNotFound(id)
		}
		found = copyProposal(p)
		return nil
	})
	return found, err
}

func (r *proposalRepo) FindByIDWithImages(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var found *entity.Proposal
	err := r.scope.read(func(st *state) error {
		p, ok := st.proposals[id]
		if !ok {
			return repository.ProposalNotFound(id)
		}
		found = copyProposal(p)
		found.Images = imagesOf(st, id, true)
		return nil
	})
	return found, err
}

func (r *proposalRepo) List(ctx context.Context, filter repository.ProposalFilter) ([]*entity.ProposalView, error) {
	var views []*entity.ProposalView
	err := r.scope.read(func(st *state) error {
		for _, p := range st.proposals {
			if filter.ProposalID != nil && p.ID != *filter.ProposalID {
				continue
			}
			if filter.JobID != nil && p.JobID != *filter.JobID {
				continue
			}
			if filter.FreelancerID != nil && p.FreelancerID != *filter.FreelancerID {
				continue
			}

			view := &entity.ProposalView{Proposal: *copyProposal(p)}
			if f, ok := st.freelancers[p.FreelancerID]; ok {
				view.FreelancerName = f.Name
			}
			if j, ok := st.jobs[p.JobID]; ok {
				view.JobTitle = j.Title
				if c, ok := st.clients[j.ClientID]; ok {
					view.ClientName = c.Name
				}
			}
			if filter.WithImageMeta {
				view.Images = imagesOf(st, p.ID, false)
			}
			views = append(views, view)
		}
		return nil
	})

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID.String() < views[j].ID.String()
		}
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, err
}

type imageRepo struct {
	scope *scope
}

func (r *imageRepo) CreateBatch(ctx context.Context, images []entity.ProposalImage) error {
	return r.scope.write(func(st *state) error {
		for _, img := range images {
			if _, ok := st.proposals[img.ProposalID]; !ok {
				return repository.ProposalNotFound(img.ProposalID)
			}
			img.Data = append([]byte(nil), img.Data...)
			st.images[img.ID] = img
		}
		return nil
	})
}

func (r *imageRepo) DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error {
	return r.scope.write(func(st *state) error {
		for id, img := range st.images {
			if img.ProposalID == proposalID {
				delete(st.images, id)
			}
		}
		return nil
	})
}

func (r *imageRepo) FindByID(ctx context.Context, proposalID, imageID uuid.UUID) (*entity.ProposalImage, error) {
	var found *entity.ProposalImage
	err := r.scope.read(func(st *state) error {
		img, ok := st.images[imageID]
		if !ok || img.ProposalID != proposalID {
			return repository.ImageNotFound(imageID)
		}
		found = &img
		return nil
	})
	return found, err
}

type jobRepo struct {
	scope *scope
}

func (r *jobRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var found *entity.Job
	err := r.scope.read(func(st *state) error {
		j, ok := st.jobs[id]
		if !ok {
			return repository.JobNotFound(id)
		}
		found = &j
		return nil
	})
	return found, err
}

func (r *jobRepo) Close(ctx context.Context, job *entity.Job) error {
	return r.scope.write(func(st *state) error {
		current, ok := st.jobs[job.ID]
		if !ok {
			return repository.JobNotFound(job.ID)
		}
		if current.Status != valueobject.JobStatusOpen {
			return repository.StatusConflict("работа уже закрыта")
		}
		current.Status = job.Status
		current.AcceptedFreelancerID = job.AcceptedFreelancerID
		current.ApprovedAt = job.ApprovedAt
		st.jobs[job.ID] = current
		return nil
	})
}

type clientRepo struct {
	scope *scope
}

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var found *entity.Client
	err := r.scope.read(func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return repository.ClientNotFound(id)
		}
		found = &c
		return nil
	})
	return found, err
}

type freelancerRepo struct {
	scope *scope
}

func (r *freelancerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Freelancer, error) {
	var found *entity.Freelancer
	err := r.scope.read(func(st *state) error {
		f, ok := st.freelancers[id]
		if !ok {
			return repository.FreelancerNotFound(id)
		}
		found = &f
		return nil
	})
	return found, err
}

type notificationRepo struct {
	scope *scope
}

func (r *notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return r.scope.write(func(st *state) error {
		st.notifications = append(st.notifications, *n)
		return nil
	})
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipient entity.Recipient, limit, offset int) ([]*entity.Notification, error) {
	var result []*entity.Notification
	err := r.scope.read(func(st *state) error {
		// Новые первыми.
		skipped := 0
		for i := len(st.notifications) - 1; i >= 0; i-- {
			n := st.notifications[i]
			if n.Recipient() != recipient {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(result) >= limit {
				break
			}
			result = append(result, &n)
		}
		return nil
	})
	return result, err
}

func stripImages(p *entity.Proposal) entity.Proposal {
	c := *p
	c.Images = nil
	c.ReposLinks = append([]string(nil), p.ReposLinks...)
	return c
}

func copyProposal(p entity.Proposal) *entity.Proposal {
	p.ReposLinks = append([]string(nil), p.ReposLinks...)
	return &p
}

// imagesOf возвращает изображения предложения по времени создания; nil, если их нет.
func imagesOf(st *state, proposalID uuid.UUID, withData bool) []entity.ProposalImage {
	var images []entity.ProposalImage
	for _, img := range st.images {
		if img.ProposalID != proposalID {
			continue
		}
		if !withData {
			img.Data = nil
		}
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].CreatedAt.Equal(images[j].CreatedAt) {
			return images[i].ID.String() < images[j].ID.String()
		}
		return images[i].CreatedAt.Before(images[j].CreatedAt)
	})
	return images
}
