package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-backend/internal/infrastructure/memory"
)

type stubPublisher struct {
	mu   sync.Mutex
	got  []*entity.Notification
	fail bool
}

func (p *stubPublisher) Publish(ctx context.Context, n *entity.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, n)
	if p.fail {
		return errors.New("hub stopped")
	}
	return nil
}

func (p *stubPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

func TestNewReasonMapping(t *testing.T) {
	m, err := NewReasonMapping("")
	require.NoError(t, err)
	reason, err := m.Reason(EventProposalRejected)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReasonRejectedProposal, reason)

	m, err = NewReasonMapping("accepted_proposal")
	require.NoError(t, err)
	reason, _ = m.Reason(EventProposalRejected)
	assert.Equal(t, valueobject.ReasonAcceptedProposal, reason)

	_, err = NewReasonMapping("declined")
	assert.Error(t, err)
	_, err = NewReasonMapping("new_proposal_added")
	assert.Error(t, err)

	_, err = m.Reason(Event("unknown"))
	assert.Error(t, err)
}

func TestEmitter_StageRendersAndPersists(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := NewEmitter(nil, nil).WithClock(func() time.Time { return now })

	clientID := uuid.New()
	jobID := uuid.New()
	n, err := e.Stage(context.Background(), store.Notifications(), EventProposalAdded,
		entity.ClientRecipient(clientID), Subject{JobID: jobID, JobTitle: "Лендинг", FreelancerName: "Иван"})
	require.NoError(t, err)

	assert.Equal(t, valueobject.ReasonNewProposalAdded, n.Reason)
	assert.Equal(t, jobID, n.TriggerID)
	assert.Equal(t, now, n.SentAt)
	assert.Contains(t, n.Description, "Иван")
	require.NotNil(t, n.ClientID)
	assert.Equal(t, clientID, *n.ClientID)

	stored, err := store.Notifications().ListByRecipient(context.Background(), entity.ClientRecipient(clientID), 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, n.ID, stored[0].ID)
}

func TestEmitter_StageRejectsUnsupportedRecipient(t *testing.T) {
	store := memory.NewStore()
	e := NewEmitter(nil, nil)

	// О новом предложении уведомляется только клиент.
	_, err := e.Stage(context.Background(), store.Notifications(), EventProposalAdded,
		entity.FreelancerRecipient(uuid.New()), Subject{JobID: uuid.New()})
	assert.Error(t, err)

	_, _, count := store.Counts()
	assert.Zero(t, count)
}

func TestEmitter_PublishIsAsyncAndTolerant(t *testing.T) {
	pub := &stubPublisher{fail: true}
	e := NewEmitter(nil, pub)

	n1, err := entity.NewNotification(entity.ClientRecipient(uuid.New()), "t", "d", valueobject.ReasonAcceptedProposal, uuid.New(), time.Now())
	require.NoError(t, err)
	n2, err := entity.NewNotification(entity.FreelancerRecipient(uuid.New()), "t", "d", valueobject.ReasonAcceptedProposal, uuid.New(), time.Now())
	require.NoError(t, err)

	e.Publish(n1, n2)

	assert.Eventually(t, func() bool { return pub.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestEmitter_PublishWithoutPublisher(t *testing.T) {
	e := NewEmitter(nil, nil)
	assert.NotPanics(t, func() { e.Publish(&entity.Notification{}) })
}
