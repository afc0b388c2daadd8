package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
	"github.com/GregMSThompson/econsim-backend/pkg/logger"
)

// conflictRetries bounds how often a mutation re-reads after losing a
// version race before giving up with a ConflictError.
const conflictRetries = 3

type selectionCatalogStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]*models.Bank, error)
}

type selectionStore interface {
	Get(ctx context.Context, userID string) (*models.BankSelection, error)
	Create(ctx context.Context, userID string) (*models.BankSelection, error)
	ReplaceAll(ctx context.Context, userID string, ids []string, maxBanks int, expectedVersion int64) (*models.BankSelection, error)
}

// selectionService owns the bounded-selection state machine. Every
// mutation funnels through commit, which enforces the two invariants (cap
// and existence) against the catalog and writes with a version guard, so
// no path can persist an unvalidated list.
type selectionService struct {
	catalog    selectionCatalogStore
	selections selectionStore
}

func NewSelectionService(catalog selectionCatalogStore, selections selectionStore) *selectionService {
	return &selectionService{
		catalog:    catalog,
		selections: selections,
	}
}

// GetOrCreate returns the user's selection, creating an empty one with the
// default cap on first touch. Idempotent.
func (s *selectionService) GetOrCreate(ctx context.Context, userID string) (*models.BankSelection, error) {
	sel, err := s.selections.Get(ctx, userID)
	if err == nil {
		return sel, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errs.NewDatabaseError("get selection", err)
	}

	sel, err = s.selections.Create(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("create selection", err)
	}

	log := logger.FromContext(ctx)
	log.Info("bank selection created", "selection_id", sel.ID)
	return sel, nil
}

// GetSelection resolves the stored ids into bank rows for display.
func (s *selectionService) GetSelection(ctx context.Context, userID string) (*dto.SelectionView, error) {
	sel, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	banks, err := s.catalog.GetByIDs(ctx, sel.SelectedBanks)
	if err != nil {
		return nil, errs.NewDatabaseError("resolve selected banks", err)
	}

	return &dto.SelectionView{
		Selection:     sel,
		SelectedBanks: banks,
		TotalSelected: len(banks),
		MaxAllowed:    sel.MaxBanks,
	}, nil
}

// ReplaceAll is the canonical transition: validate, then swap the whole
// list. maxBanks of 0 means "keep the default".
func (s *selectionService) ReplaceAll(ctx context.Context, userID string, ids []string, maxBanks int) (*dto.SelectionResult, error) {
	if maxBanks == 0 {
		maxBanks = models.MaxSelectionSize
	}
	if maxBanks < 1 || maxBanks > models.MaxSelectionSize {
		return nil, errs.NewValidationError(fmt.Sprintf("maxBanks must be between 1 and %d", models.MaxSelectionSize))
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		sel, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		result, err := s.commit(ctx, userID, ids, maxBanks, sel.Version)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return result, err
	}
	return nil, errs.NewConflictError("Selection was modified concurrently, please retry")
}

// Add appends one bank. Adding a bank that is already selected is a no-op
// reported in the result, not an error.
func (s *selectionService) Add(ctx context.Context, userID, bankID string) (*dto.SelectionResult, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		sel, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		if sel.Contains(bankID) {
			return s.noOpResult(ctx, sel, "Bank already selected")
		}
		if len(sel.SelectedBanks) >= sel.MaxBanks {
			return nil, errs.NewValidationError(fmt.Sprintf("Cannot select more than %d banks", sel.MaxBanks))
		}

		ids := append(append([]string{}, sel.SelectedBanks...), bankID)
		result, err := s.commit(ctx, userID, ids, sel.MaxBanks, sel.Version)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return result, err
	}
	return nil, errs.NewConflictError("Selection was modified concurrently, please retry")
}

// Remove drops one bank. Removing an absent bank is a no-op reported in
// the result, not an error.
func (s *selectionService) Remove(ctx context.Context, userID, bankID string) (*dto.SelectionResult, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		sel, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		if !sel.Contains(bankID) {
			return s.noOpResult(ctx, sel, "Bank not in selection")
		}

		ids := make([]string, 0, len(sel.SelectedBanks))
		for _, id := range sel.SelectedBanks {
			if id != bankID {
				ids = append(ids, id)
			}
		}

		result, err := s.commit(ctx, userID, ids, sel.MaxBanks, sel.Version)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return result, err
	}
	return nil, errs.NewConflictError("Selection was modified concurrently, please retry")
}

// Clear empties the list. The record and its cap survive.
func (s *selectionService) Clear(ctx context.Context, userID string) (*dto.SelectionResult, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		sel, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		result, err := s.commit(ctx, userID, []string{}, sel.MaxBanks, sel.Version)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return result, err
	}
	return nil, errs.NewConflictError("Selection was modified concurrently, please retry")
}

// commit enforces the invariants and performs the guarded write. A
// store.ErrConflict escapes unwrapped so callers can retry with a fresh
// read; every other failure is mapped to a typed error.
func (s *selectionService) commit(ctx context.Context, userID string, ids []string, maxBanks int, version int64) (*dto.SelectionResult, error) {
	ids = dedupe(ids)

	if len(ids) > maxBanks {
		return nil, errs.NewValidationError(fmt.Sprintf("Cannot select more than %d banks", maxBanks))
	}

	banks, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errs.NewDatabaseError("resolve bank ids", err)
	}
	if len(banks) != len(ids) {
		return nil, errs.NewValidationError("One or more banks not found")
	}

	if _, err := s.selections.ReplaceAll(ctx, userID, ids, maxBanks, version); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, store.ErrConflict
		}
		return nil, errs.NewDatabaseError("replace selection", err)
	}

	log := logger.FromContext(ctx)
	log.Info("bank selection updated", "selected", len(ids), "max_banks", maxBanks)

	return &dto.SelectionResult{
		Success:       true,
		SelectedBanks: banks,
		TotalSelected: len(banks),
		MaxAllowed:    maxBanks,
		Message:       fmt.Sprintf("Successfully selected %d banks", len(banks)),
	}, nil
}

// noOpResult reports the unchanged current state for the idempotent
// outcomes.
func (s *selectionService) noOpResult(ctx context.Context, sel *models.BankSelection, message string) (*dto.SelectionResult, error) {
	banks, err := s.catalog.GetByIDs(ctx, sel.SelectedBanks)
	if err != nil {
		return nil, errs.NewDatabaseError("resolve selected banks", err)
	}

	return &dto.SelectionResult{
		Success:       false,
		SelectedBanks: banks,
		TotalSelected: len(banks),
		MaxAllowed:    sel.MaxBanks,
		Message:       message,
	}, nil
}

// dedupe collapses duplicate ids preserving first occurrence, so the
// stored list behaves as an ordered set.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
