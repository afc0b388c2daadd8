package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
	"github.com/GregMSThompson/econsim-backend/pkg/helpers"
)

type fakeSearchCatalog struct {
	banks        []*models.Bank
	total        int
	searchErr    error
	getErr       error
	lastCriteria dto.SearchCriteria
}

func (f *fakeSearchCatalog) Search(_ context.Context, criteria dto.SearchCriteria) ([]*models.Bank, int, error) {
	f.lastCriteria = criteria
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.banks, f.total, nil
}

func (f *fakeSearchCatalog) Get(_ context.Context, id string) (*models.Bank, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, b := range f.banks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, store.ErrNotFound
}

func TestSearchValidatesPagingBounds(t *testing.T) {
	svc := NewSearchService(&fakeSearchCatalog{})

	cases := []struct {
		name     string
		criteria dto.SearchCriteria
	}{
		{"zero limit", dto.SearchCriteria{Limit: 0}},
		{"negative limit", dto.SearchCriteria{Limit: -5, Offset: 0}},
		{"limit above max", dto.SearchCriteria{Limit: dto.MaxSearchLimit + 1}},
		{"negative offset", dto.SearchCriteria{Limit: 20, Offset: -1}},
		{"negative minAssets", dto.SearchCriteria{Limit: 20, MinAssets: helpers.Ptr(-1.0)}},
		{"negative maxAssets", dto.SearchCriteria{Limit: 20, MaxAssets: helpers.Ptr(-0.5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(helpers.TestCtx(), tc.criteria)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSearchComputesHasMore(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		limit   int
		offset  int
		hasMore bool
	}{
		{"first page of many", 50, 20, 0, true},
		{"middle page", 50, 20, 20, true},
		{"last partial page", 50, 20, 40, false},
		{"exact fit", 40, 20, 20, false},
		{"empty result", 0, 20, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSearchService(&fakeSearchCatalog{total: tc.total})

			result, err := svc.Search(helpers.TestCtx(), dto.SearchCriteria{Limit: tc.limit, Offset: tc.offset})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.HasMore != tc.hasMore {
				t.Fatalf("hasMore = %v, want %v", result.HasMore, tc.hasMore)
			}
			if result.Limit != tc.limit || result.Offset != tc.offset || result.Total != tc.total {
				t.Fatalf("envelope mismatch: %+v", result)
			}
		})
	}
}

func TestSearchPassesCriteriaThrough(t *testing.T) {
	catalog := &fakeSearchCatalog{}
	svc := NewSearchService(catalog)

	criteria := dto.SearchCriteria{
		Search:    "frost",
		State:     "TX",
		Regulator: "FED",
		MinAssets: helpers.Ptr(1_000_000.0),
		Limit:     10,
		Offset:    30,
	}
	if _, err := svc.Search(helpers.TestCtx(), criteria); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catalog.lastCriteria.Search != "frost" || catalog.lastCriteria.State != "TX" {
		t.Fatalf("criteria not passed through: %+v", catalog.lastCriteria)
	}
}

func TestSearchStoreFailureMapsToDatabaseError(t *testing.T) {
	svc := NewSearchService(&fakeSearchCatalog{searchErr: errors.New("timeout")})

	_, err := svc.Search(helpers.TestCtx(), dto.SearchCriteria{Limit: 20})

	var derr *errs.DatabaseError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}

func TestGetBankNotFound(t *testing.T) {
	svc := NewSearchService(&fakeSearchCatalog{})

	_, err := svc.GetBank(helpers.TestCtx(), "ghost")

	var nerr *errs.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nerr.Message != "Bank not found" {
		t.Fatalf("wrong message: %q", nerr.Message)
	}
}

func TestGetBankReturnsRow(t *testing.T) {
	bank := &models.Bank{ID: "b1", BankName: "Frost Bank"}
	svc := NewSearchService(&fakeSearchCatalog{banks: []*models.Bank{bank}})

	got, err := svc.GetBank(helpers.TestCtx(), "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BankName != "Frost Bank" {
		t.Fatalf("wrong bank: %+v", got)
	}
}
