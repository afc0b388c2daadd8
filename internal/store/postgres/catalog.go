package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
)

const bankColumns = `id, rssd_id, fdic_certificate_number, bank_name, city, state,
	total_assets, charter_type, regulator, is_active, last_filing_date,
	created_at, updated_at`

// catalogOrder keeps pagination stable: assets break most ties, name the
// rest.
const catalogOrder = ` ORDER BY total_assets DESC, bank_name ASC`

// CatalogStore reads the banks table. The catalog is never written by this
// service.
type CatalogStore struct {
	store *Store
}

func NewCatalogStore(s *Store) *CatalogStore {
	return &CatalogStore{store: s}
}

// Search returns one page of active banks matching the criteria plus the
// total match count. The count and page queries share the same filter and
// run concurrently.
func (cs *CatalogStore) Search(ctx context.Context, criteria dto.SearchCriteria) ([]*models.Bank, int, error) {
	f := catalogFilter(criteria)
	where := f.Where()
	filterArgs := f.Args()

	var (
		banks []*models.Bank
		total int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		row := cs.store.pool.QueryRow(gctx, `SELECT COUNT(*) FROM banks`+where, filterArgs...)
		return row.Scan(&total)
	})

	g.Go(func() error {
		query := fmt.Sprintf(`SELECT %s FROM banks%s%s LIMIT $%d OFFSET $%d`,
			bankColumns, where, catalogOrder, len(filterArgs)+1, len(filterArgs)+2)
		args := append(append([]any{}, filterArgs...), criteria.Limit, criteria.Offset)

		rows, err := cs.store.pool.Query(gctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		banks, err = scanBanks(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return banks, total, nil
}

// Get fetches one active bank by id.
func (cs *CatalogStore) Get(ctx context.Context, id string) (*models.Bank, error) {
	query := fmt.Sprintf(`SELECT %s FROM banks WHERE id = $1 AND is_active = true`, bankColumns)
	row := cs.store.pool.QueryRow(ctx, query, id)

	bank, err := scanBank(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return bank, nil
}

// GetByIDs resolves ids against the active catalog in catalog order. Ids
// that do not resolve are simply absent from the result; callers compare
// lengths to detect them.
func (cs *CatalogStore) GetByIDs(ctx context.Context, ids []string) ([]*models.Bank, error) {
	if len(ids) == 0 {
		return []*models.Bank{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM banks WHERE id = ANY($1) AND is_active = true%s`,
		bankColumns, catalogOrder)

	rows, err := cs.store.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBanks(rows)
}

func scanBank(row pgx.Row) (*models.Bank, error) {
	var b models.Bank
	err := row.Scan(
		&b.ID, &b.RSSDID, &b.FDICCertificateNumber, &b.BankName, &b.City, &b.State,
		&b.TotalAssets, &b.CharterType, &b.Regulator, &b.IsActive, &b.LastFilingDate,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBanks(rows pgx.Rows) ([]*models.Bank, error) {
	banks := []*models.Bank{}
	for rows.Next() {
		bank, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, rows.Err()
}
