package pgsql

import (
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	outboxRepo := newPgxOutboxRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UnitOfWork:   newPgxUnitOfWork(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		MemberRepo:   newPgxMemberRepository(dbPool),
		LookupRepo:   newPgxLookupRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		OutboxRepo:   outboxRepo,
		ActivityRepo: outboxRepo,
	}
}
