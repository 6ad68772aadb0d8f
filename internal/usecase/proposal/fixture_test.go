package proposal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/attachment"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/notification"
	"github.com/ignatzorin/marketplace-backend/internal/usecase/proposal"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu        sync.Mutex
	published []*entity.Notification
}

func (p *recordingPublisher) Publish(ctx context.Context, n *entity.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

type fixture struct {
	store      *memory.Store
	publisher  *recordingPublisher
	client     entity.Client
	freelancer entity.Freelancer
	job        entity.Job

	create *proposal.CreateProposalUseCase
	update *proposal.UpdateProposalUseCase
	delete *proposal.DeleteProposalUseCase
	review *proposal.ReviewProposalUseCase
	get    *proposal.GetProposalUseCase
	image  *proposal.GetProposalImageUseCase
	all    *proposal.ListProposalsUseCase
	byJob  *proposal.ListJobProposalsUseCase
	byFree *proposal.ListFreelancerProposalsUseCase
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithReasons(t, notification.DefaultReasonMapping())
}

func newFixtureWithReasons(t *testing.T, reasons notification.ReasonMapping) *fixture {
	t.Helper()

	store := memory.NewStore()
	publisher := &recordingPublisher{}
	clock := func() time.Time { return testNow }
	emitter := notification.NewEmitter(reasons, publisher).WithClock(clock)

	f := &fixture{
		store:      store,
		publisher:  publisher,
		client:     entity.Client{ID: uuid.New(), Name: "Анна"},
		freelancer: entity.Freelancer{ID: uuid.New(), Name: "Иван", Title: "Go developer"},
	}
	f.job = entity.Job{
		ID:        uuid.New(),
		ClientID:  f.client.ID,
		Title:     "Лендинг",
		Status:    valueobject.JobStatusOpen,
		CreatedAt: testNow,
	}
	store.AddClient(f.client)
	store.AddFreelancer(f.freelancer)
	store.AddJob(f.job)

	f.create = proposal.NewCreateProposalUseCase(store, emitter, clock)
	f.update = proposal.NewUpdateProposalUseCase(store, clock)
	f.delete = proposal.NewDeleteProposalUseCase(store)
	f.review = proposal.NewReviewProposalUseCase(store, emitter, clock)
	f.get = proposal.NewGetProposalUseCase(store)
	f.image = proposal.NewGetProposalImageUseCase(store)
	f.all = proposal.NewListProposalsUseCase(store)
	f.byJob = proposal.NewListJobProposalsUseCase(store)
	f.byFree = proposal.NewListFreelancerProposalsUseCase(store)
	return f
}

func (f *fixture) input(images ...attachment.Attachment) proposal.CreateProposalInput {
	return proposal.CreateProposalInput{
		JobID:        f.job.ID,
		FreelancerID: f.freelancer.ID,
		Description:  "Сделаю за неделю",
		Duration:     10,
		Price:        500,
		ReposLinks:   []string{"https://github.com/ivan/landing"},
		Images:       images,
	}
}

func (f *fixture) mustCreate(t *testing.T, images ...attachment.Attachment) *entity.Proposal {
	t.Helper()
	p, err := f.create.Execute(context.Background(), f.input(images...))
	require.NoError(t, err)
	return p
}

func (f *fixture) addJob(t *testing.T) entity.Job {
	t.Helper()
	job := entity.Job{
		ID:        uuid.New(),
		ClientID:  f.client.ID,
		Title:     "Мобильное приложение",
		Status:    valueobject.JobStatusOpen,
		CreatedAt: testNow,
	}
	f.store.AddJob(job)
	return job
}

func (f *fixture) notificationsOf(t *testing.T, to entity.Recipient) []*entity.Notification {
	t.Helper()
	ns, err := f.store.Notifications().ListByRecipient(context.Background(), to, 0, 0)
	require.NoError(t, err)
	return ns
}

func image(name string, size int) attachment.Attachment {
	return attachment.Attachment{FileName: name, Size: int64(size), Data: make([]byte, size)}
}
