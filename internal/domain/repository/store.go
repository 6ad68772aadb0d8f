package repository

import "context"

// Repositories объединяет репозитории, работающие в одной области видимости
// (соединение или транзакция).
type Repositories interface {
	Proposals() ProposalRepository
	Images() ProposalImageRepository
	Jobs() JobRepository
	Clients() ClientRepository
	Freelancers() FreelancerRepository
	Notifications() NotificationRepository
}

// Store хранит сущности и задаёт явную границу транзакции.
// Чтения вне WithinTx выполняются без транзакции.
type Store interface {
	Repositories
	// WithinTx фиксирует все изменения fn одной транзакцией либо не фиксирует ничего.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
	Ping(ctx context.Context) error
}
