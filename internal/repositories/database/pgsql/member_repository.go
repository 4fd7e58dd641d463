package pgsql

import (
	"context"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/antusaha970/member-management-backend-sub000/internal/models"
	"github.com/antusaha970/member-management-backend-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const memberColumns = `member_id, membership_number, first_name, last_name, email, phone, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.MembershipNumber,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func toDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:         m.MemberID,
		MembershipNumber: m.MembershipNumber,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		IsActive:         m.IsActive,
		AuditFields:      mapping.ToDomainAuditFields(m.AuditFields, m.Version),
	}
}

func scanMemberAccount(row pgx.Row) (models.MemberAccount, error) {
	var m models.MemberAccount
	err := row.Scan(
		&m.AccountID,
		&m.MemberID,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func toDomainMemberAccount(m models.MemberAccount) domain.MemberAccount {
	return domain.MemberAccount{
		AccountID:   m.AccountID,
		MemberID:    m.MemberID,
		Balance:     m.Balance,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields, m.Version),
	}
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.MembershipNumber,
		member.FirstName,
		member.LastName,
		member.Email,
		member.Phone,
		member.IsActive,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
		member.Version,
	)
	return storageErr(err, "save member "+member.MembershipNumber)
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		return nil, storageErr(err, "find member "+memberID)
	}
	member := toDomainMember(m)
	return &member, nil
}

func (r *PgxMemberRepository) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE is_active
		ORDER BY membership_number
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storageErr(err, "query members")
	}
	modelMembers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Member, error) {
		return scanMember(row)
	})
	if err != nil {
		return nil, storageErr(err, "scan member rows")
	}

	members := make([]domain.Member, len(modelMembers))
	for i, m := range modelMembers {
		members[i] = toDomainMember(m)
	}
	return members, nil
}

func (r *PgxMemberRepository) FindAccountByMemberID(ctx context.Context, memberID string) (*domain.MemberAccount, error) {
	query := `
		SELECT account_id, member_id, balance, created_at, created_by, last_updated_at, last_updated_by, version
		FROM member_accounts
		WHERE member_id = $1;
	`
	m, err := scanMemberAccount(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		return nil, storageErr(err, "find account of member "+memberID)
	}
	acc := toDomainMemberAccount(m)
	return &acc, nil
}
