package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
)

const selectionColumns = `id, user_id, selected_banks, max_banks, version, created_at, updated_at`

// SelectionStore persists the per-user bank selections. ReplaceAll is the
// only write path besides lazy creation, and it is guarded by the record
// version.
type SelectionStore struct {
	store *Store
}

func NewSelectionStore(s *Store) *SelectionStore {
	return &SelectionStore{store: s}
}

// Get fetches the selection for a user, or store.ErrNotFound.
func (ss *SelectionStore) Get(ctx context.Context, userID string) (*models.BankSelection, error) {
	row := ss.store.pool.QueryRow(ctx,
		`SELECT `+selectionColumns+` FROM bank_selections WHERE user_id = $1`, userID)
	return scanSelection(row)
}

// Create inserts an empty selection with the default cap. Safe under a
// create race: the loser of the unique-index race reads the winner's row.
func (ss *SelectionStore) Create(ctx context.Context, userID string) (*models.BankSelection, error) {
	row := ss.store.pool.QueryRow(ctx, `
		INSERT INTO bank_selections (user_id, selected_banks, max_banks)
		VALUES ($1, '{}', $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+selectionColumns,
		userID, models.MaxSelectionSize)

	sel, err := scanSelection(row)
	if errors.Is(err, store.ErrNotFound) {
		return ss.Get(ctx, userID)
	}
	return sel, err
}

// ReplaceAll overwrites the stored list and cap, advancing the version.
// The write only lands if the record still carries expectedVersion;
// otherwise store.ErrConflict is returned and the caller re-reads.
func (ss *SelectionStore) ReplaceAll(ctx context.Context, userID string, ids []string, maxBanks int, expectedVersion int64) (*models.BankSelection, error) {
	if ids == nil {
		ids = []string{}
	}

	row := ss.store.pool.QueryRow(ctx, `
		UPDATE bank_selections
		SET selected_banks = $2, max_banks = $3, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND version = $4
		RETURNING `+selectionColumns,
		userID, ids, maxBanks, expectedVersion)

	sel, err := scanSelection(row)
	if errors.Is(err, store.ErrNotFound) {
		// Distinguish a stale version from a missing record.
		if _, getErr := ss.Get(ctx, userID); getErr == nil {
			return nil, store.ErrConflict
		}
		return nil, store.ErrNotFound
	}
	return sel, err
}

func scanSelection(row pgx.Row) (*models.BankSelection, error) {
	var s models.BankSelection
	err := row.Scan(&s.ID, &s.UserID, &s.SelectedBanks, &s.MaxBanks, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if s.SelectedBanks == nil {
		s.SelectedBanks = []string{}
	}
	return &s, nil
}
