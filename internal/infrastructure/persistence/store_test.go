package persistence

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/db"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/pkg/apperror"
)

// Тесты работают с настоящим PostgreSQL и пропускаются без DATABASE_URL.
type pgFixture struct {
	store      *Store
	conn       *sqlx.DB
	client     entity.Client
	freelancer entity.Freelancer
	job        entity.Job
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL не задан")
	}

	ctx := context.Background()
	conn, err := db.NewPostgres(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn, "../../../migrations"))

	f := &pgFixture{
		store:      NewStore(conn),
		conn:       conn,
		client:     entity.Client{ID: uuid.New(), Name: "Анна"},
		freelancer: entity.Freelancer{ID: uuid.New(), Name: "Иван", Title: "Go разработчик"},
	}
	f.job = entity.Job{ID: uuid.New(), ClientID: f.client.ID, Title: "Лендинг", Status: valueobject.JobStatusOpen}

	conn.MustExecContext(ctx, `INSERT INTO clients (id, name) VALUES ($1, $2)`, f.client.ID, f.client.Name)
	conn.MustExecContext(ctx, `INSERT INTO freelancers (id, name, title) VALUES ($1, $2, $3)`,
		f.freelancer.ID, f.freelancer.Name, f.freelancer.Title)
	conn.MustExecContext(ctx, `INSERT INTO jobs (id, client_id, title, status) VALUES ($1, $2, $3, $4)`,
		f.job.ID, f.job.ClientID, f.job.Title, string(f.job.Status))

	t.Cleanup(func() {
		ctx := context.Background()
		conn.ExecContext(ctx, `DELETE FROM notifications WHERE client_id = $1 OR freelancer_id = $2`, f.client.ID, f.freelancer.ID)
		conn.ExecContext(ctx, `DELETE FROM proposals WHERE job_id = $1`, f.job.ID)
		conn.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, f.job.ID)
		conn.ExecContext(ctx, `DELETE FROM freelancers WHERE id = $1`, f.freelancer.ID)
		conn.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, f.client.ID)
	})
	return f
}

func (f *pgFixture) proposal(t *testing.T, links []string) *entity.Proposal {
	t.Helper()
	p, err := entity.NewProposal(f.job.ID, f.freelancer.ID, "Сделаю за неделю", 7, 1500, links, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return p
}

func TestPGProposals_CreateAndUpdateWithoutLinks(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	// Предложение без ссылок и вложений.
	p := f.proposal(t, nil)
	require.NoError(t, f.store.Proposals().Create(ctx, p))

	got, err := f.store.Proposals().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReposLinks)
	assert.Equal(t, valueobject.ProposalStatusPending, got.Status)
	assert.Equal(t, 1500.0, got.Price)

	require.NoError(t, got.Revise(f.job.ID, f.freelancer.ID, "Сделаю за пять дней", 5, 1200, nil, time.Now()))
	require.NoError(t, f.store.Proposals().Update(ctx, got))

	got, err = f.store.Proposals().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Сделаю за пять дней", got.Description)
	assert.Equal(t, 5, got.Duration)
	assert.Empty(t, got.ReposLinks)
}

func TestPGProposals_MissingRowsAreNotFound(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	missing := uuid.New()

	_, err := f.store.Proposals().FindByID(ctx, missing)
	assert.True(t, apperror.IsNotFound(err))

	err = f.store.Proposals().Delete(ctx, missing)
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.store.Jobs().FindByID(ctx, missing)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, repository.KindJob, appErr.Entity)
}

func TestPGProposals_SecondDecisionConflicts(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	p := f.proposal(t, []string{"https://github.com/ivan/landing"})
	require.NoError(t, f.store.Proposals().Create(ctx, p))

	first := *p
	require.NoError(t, first.Approve(time.Now()))
	require.NoError(t, f.store.Proposals().Transition(ctx, &first, valueobject.ProposalStatusPending))

	// Второе решение прочитало предложение до первого и проигрывает сравнение статуса.
	second := *p
	require.NoError(t, second.Reject(time.Now()))
	err := f.store.Proposals().Transition(ctx, &second, valueobject.ProposalStatusPending)
	assert.True(t, apperror.IsConflict(err))

	got, err := f.store.Proposals().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ProposalStatusApproved, got.Status)
	assert.NotNil(t, got.Deadline)

	job, err := f.store.Jobs().FindByID(ctx, f.job.ID)
	require.NoError(t, err)
	require.NoError(t, job.Close(f.freelancer.ID, time.Now()))
	require.NoError(t, f.store.Jobs().Close(ctx, job))

	again := f.job
	require.NoError(t, again.Close(f.freelancer.ID, time.Now()))
	err = f.store.Jobs().Close(ctx, &again)
	assert.True(t, apperror.IsConflict(err))
}

func TestPGProposals_DeleteCascadesImages(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	p := f.proposal(t, nil)
	p.AttachImages([]entity.ProposalImage{
		{FileName: "a.png", Data: []byte{1, 2, 3}},
		{FileName: "b.jpg", Data: []byte{4, 5}},
	}, time.Now())

	err := f.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		if err := tx.Proposals().Create(ctx, p); err != nil {
			return err
		}
		return tx.Images().CreateBatch(ctx, p.Images)
	})
	require.NoError(t, err)

	withImages, err := f.store.Proposals().FindByIDWithImages(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, withImages.Images, 2)

	img, err := f.store.Images().FindByID(ctx, p.ID, p.Images[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, img.Data)

	require.NoError(t, f.store.Proposals().Delete(ctx, p.ID))

	var left int
	require.NoError(t, f.conn.GetContext(ctx, &left, `SELECT COUNT(*) FROM proposal_images WHERE proposal_id = $1`, p.ID))
	assert.Zero(t, left)

	_, err = f.store.Images().FindByID(ctx, p.ID, p.Images[0].ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPGProposals_FailedTransactionRollsBack(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	p := f.proposal(t, nil)
	// Второе изображение нарушает ограничение на размер.
	p.AttachImages([]entity.ProposalImage{
		{FileName: "ok.png", Data: []byte{1}},
		{FileName: "big.png", Data: []byte{1}, Size: 2 << 20},
	}, time.Now())

	err := f.store.WithinTx(ctx, func(ctx context.Context, tx repository.Repositories) error {
		if err := tx.Proposals().Create(ctx, p); err != nil {
			return err
		}
		return tx.Images().CreateBatch(ctx, p.Images)
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeDatabaseError, appErr.Code)

	_, err = f.store.Proposals().FindByID(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPGProposals_ListFiltersAndViews(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	older := f.proposal(t, nil)
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := f.proposal(t, []string{"https://github.com/ivan/shop"})
	newer.AttachImages([]entity.ProposalImage{{FileName: "shot.png", Data: []byte{9}}}, time.Now())
	require.NoError(t, f.store.Proposals().Create(ctx, older))
	require.NoError(t, f.store.Proposals().Create(ctx, newer))
	require.NoError(t, f.store.Images().CreateBatch(ctx, newer.Images))

	views, err := f.store.Proposals().List(ctx, repository.ProposalFilter{JobID: &f.job.ID, WithImageMeta: true})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, older.ID, views[1].ID)
	assert.Equal(t, "Иван", views[0].FreelancerName)
	assert.Equal(t, "Лендинг", views[0].JobTitle)
	assert.Equal(t, "Анна", views[0].ClientName)
	require.Len(t, views[0].Images, 1)
	assert.Nil(t, views[0].Images[0].Data)
	assert.Nil(t, views[1].Images)

	views, err = f.store.Proposals().List(ctx, repository.ProposalFilter{FreelancerID: &f.freelancer.ID, ProposalID: &older.ID})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, older.ID, views[0].ID)

	other := uuid.New()
	views, err = f.store.Proposals().List(ctx, repository.ProposalFilter{JobID: &other})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestPGNotifications_PagingNewestFirst(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	to := entity.ClientRecipient(f.client.ID)
	base := time.Now().UTC().Truncate(time.Microsecond)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		n, err := entity.NewNotification(to, "Новое предложение", "Иван откликнулся", valueobject.ReasonNewProposalAdded,
			f.job.ID, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, f.store.Notifications().Create(ctx, n))
		ids = append(ids, n.ID)
	}

	// Без лимита возвращаются все уведомления.
	all, err := f.store.Notifications().ListByRecipient(ctx, to, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)
	assert.Nil(t, all[0].FreelancerID)

	page, err := f.store.Notifications().ListByRecipient(ctx, to, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	none, err := f.store.Notifications().ListByRecipient(ctx, entity.FreelancerRecipient(f.freelancer.ID), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
