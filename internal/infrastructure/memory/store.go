// Package memory хранит сущности в памяти процесса.
// Транзакция работает над копией состояния и подменяет его только при успехе.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
)

type state struct {
	clients       map[uuid.UUID]entity.Client
	freelancers   map[uuid.UUID]entity.Freelancer
	jobs          map[uuid.UUID]entity.Job
	proposals     map[uuid.UUID]entity.Proposal
	images        map[uuid.UUID]entity.ProposalImage
	notifications []entity.Notification
}

func newState() *state {
	return &state{
		clients:     make(map[uuid.UUID]entity.Client),
		freelancers: make(map[uuid.UUID]entity.Freelancer),
		jobs:        make(map[uuid.UUID]entity.Job),
		proposals:   make(map[uuid.UUID]entity.Proposal),
		images:      make(map[uuid.UUID]entity.ProposalImage),
	}
}

// clone копирует карты. Значения-сущности не изменяются на месте, поэтому их указатели можно разделять.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.freelancers {
		c.freelancers[k] = v
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	for k, v := range s.proposals {
		c.proposals[k] = v
	}
	for k, v := range s.images {
		c.images[k] = v
	}
	c.notifications = append([]entity.Notification(nil), s.notifications...)
	return c
}

// Store реализует repository.Store в памяти.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &scope{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.state = work
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Proposals() repository.ProposalRepository {
	return &proposalRepo{scope: &scope{store: s}}
}

func (s *Store) Images() repository.ProposalImageRepository {
	return &imageRepo{scope: &scope{store: s}}
}

func (s *Store) Jobs() repository.JobRepository {
	return &jobRepo{scope: &scope{store: s}}
}

func (s *Store) Clients() repository.ClientRepository {
	return &clientRepo{scope: &scope{store: s}}
}

func (s *Store) Freelancers() repository.FreelancerRepository {
	return &freelancerRepo{scope: &scope{store: s}}
}

func (s *Store) Notifications() repository.NotificationRepository {
	return &notificationRepo{scope: &scope{store: s}}
}

// AddClient регистрирует клиента. Профили ведёт внешняя система, здесь только заполнение.
func (s *Store) AddClient(c entity.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.clients[c.ID] = c
}

func (s *Store) AddFreelancer(f entity.Freelancer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.freelancers[f.ID] = f
}

func (s *Store) AddJob(j entity.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.jobs[j.ID] = j
}

// Counts возвращает число предложений, изображений и уведомлений.
func (s *Store) Counts() (proposals, images, notifications int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.proposals), len(s.state.images), len(s.state.notifications)
}

// scope задаёт область видимости репозиториев: транзакция или прямой доступ под мьютексом.
type scope struct {
	store *Store
	tx    *state
}

func (sc *scope) read(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	return fn(sc.store.state)
}

func (sc *scope) write(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	return fn(sc.store.state)
}

func (sc *scope) Proposals() repository.ProposalRepository {
	return &proposalRepo{scope: sc}
}

func (sc *scope) Images() repository.ProposalImageRepository {
	return &imageRepo{scope: sc}
}

func (sc *scope) Jobs() repository.JobRepository {
	return &jobRepo{scope: sc}
}

func (sc *scope) Clients() repository.ClientRepository {
	return &clientRepo{scope: sc}
}

func (sc *scope) Freelancers() repository.FreelancerRepository {
	return &freelancerRepo{scope: sc}
}

func (sc *scope) Notifications() repository.NotificationRepository {
	return &notificationRepo{scope: sc}
}
