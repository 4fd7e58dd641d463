package pgsql

import (
	"context"
	"fmt"

	"github.com/antusaha970/member-management-backend-sub000/internal/apperrors"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// lookupTables maps each kind to its table. Table names never come from input.
var lookupTables = map[domain.LookupKind]string{
	domain.LookupPaymentMethod:    "payment_methods",
	domain.LookupIncomeParticular: "income_particulars",
	domain.LookupReceivedFrom:     "received_froms",
}

const lookupColumns = `id, name, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxLookupRepository struct {
	BaseRepository
}

func newPgxLookupRepository(pool *pgxpool.Pool) portsrepo.LookupRepository {
	return &PgxLookupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LookupRepository = (*PgxLookupRepository)(nil)

func lookupTable(kind domain.LookupKind) (string, error) {
	table, ok := lookupTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown lookup kind %q", apperrors.ErrValidation, kind)
	}
	return table, nil
}

func scanLookup(kind domain.LookupKind) func(row pgx.Row) (domain.Lookup, error) {
	return func(row pgx.Row) (domain.Lookup, error) {
		l := domain.Lookup{Kind: kind}
		err := row.Scan(&l.ID, &l.Name, &l.IsActive, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy)
		return l, err
	}
}

func (r *PgxLookupRepository) FindLookupByID(ctx context.Context, kind domain.LookupKind, id string) (*domain.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}
	l, err := scanLookup(kind)(r.Pool.QueryRow(ctx, `SELECT `+lookupColumns+` FROM `+table+` WHERE id = $1;`, id))
	if err != nil {
		return nil, storageErr(err, fmt.Sprintf("find %s %s", kind, id))
	}
	return &l, nil
}

func (r *PgxLookupRepository) FindLookupByName(ctx context.Context, kind domain.LookupKind, name string) (*domain.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}
	l, err := scanLookup(kind)(r.Pool.QueryRow(ctx, `SELECT `+lookupColumns+` FROM `+table+` WHERE name = $1;`, name))
	if err != nil {
		return nil, storageErr(err, fmt.Sprintf("find %s %q", kind, name))
	}
	return &l, nil
}

func (r *PgxLookupRepository) ListLookups(ctx context.Context, kind domain.LookupKind) ([]domain.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+lookupColumns+` FROM `+table+` WHERE is_active ORDER BY name;`)
	if err != nil {
		return nil, storageErr(err, "list "+string(kind))
	}
	scan := scanLookup(kind)
	lookups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Lookup, error) {
		return scan(row)
	})
	if err != nil {
		return nil, storageErr(err, "scan "+string(kind)+" rows")
	}
	return lookups, nil
}

func (r *PgxLookupRepository) SaveLookup(ctx context.Context, lookup domain.Lookup) error {
	table, err := lookupTable(lookup.Kind)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + table + ` (` + lookupColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err = r.Pool.Exec(ctx, query,
		lookup.ID,
		lookup.Name,
		lookup.IsActive,
		lookup.CreatedAt,
		lookup.CreatedBy,
		lookup.LastUpdatedAt,
		lookup.LastUpdatedBy,
	)
	return storageErr(err, fmt.Sprintf("save %s %q", lookup.Kind, lookup.Name))
}
