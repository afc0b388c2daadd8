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

type catalogSearchStore interface {
	Search(ctx context.Context, criteria dto.SearchCriteria) ([]*models.Bank, int, error)
	Get(ctx context.Context, id string) (*models.Bank, error)
}

type searchService struct {
	catalog catalogSearchStore
}

func NewSearchService(catalog catalogSearchStore) *searchService {
	return &searchService{catalog: catalog}
}

// Search validates the paging bounds, runs the filtered catalog query and
// computes the paging envelope.
func (s *searchService) Search(ctx context.Context, criteria dto.SearchCriteria) (*dto.SearchResult, error) {
	if criteria.Limit < 1 || criteria.Limit > dto.MaxSearchLimit {
		return nil, errs.NewValidationError(fmt.Sprintf("Limit must be between 1 and %d", dto.MaxSearchLimit))
	}
	if criteria.Offset < 0 {
		return nil, errs.NewValidationError("Offset must be non-negative")
	}
	if criteria.MinAssets != nil && *criteria.MinAssets < 0 {
		return nil, errs.NewValidationError("minAssets must be non-negative")
	}
	if criteria.MaxAssets != nil && *criteria.MaxAssets < 0 {
		return nil, errs.NewValidationError("maxAssets must be non-negative")
	}

	banks, total, err := s.catalog.Search(ctx, criteria)
	if err != nil {
		return nil, errs.NewDatabaseError("search banks", err)
	}

	log := logger.FromContext(ctx)
	log.Debug("bank search completed", "total", total, "returned", len(banks))

	return &dto.SearchResult{
		Banks:   banks,
		Total:   total,
		Limit:   criteria.Limit,
		Offset:  criteria.Offset,
		HasMore: criteria.Offset+criteria.Limit < total,
	}, nil
}

// GetBank fetches one active bank.
func (s *searchService) GetBank(ctx context.Context, id string) (*models.Bank, error) {
	bank, err := s.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NewNotFoundError("Bank not found")
		}
		return nil, errs.NewDatabaseError("get bank", err)
	}
	return bank, nil
}
