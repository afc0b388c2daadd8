// Package firestoredb backs the demo binary with Firestore instead of
// Postgres. It is a hosted-database convenience path: equality and range
// filters run as indexed queries, but the free-text substring match is
// evaluated in memory because Firestore has no OR-substring query. Fine
// for demo-sized catalogs, not for the full FDIC directory.
package firestoredb

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
)

type CatalogStore struct {
	client *firestore.Client
}

func NewCatalogStore(client *firestore.Client) *CatalogStore {
	return &CatalogStore{client: client}
}

func (cs *CatalogStore) collection() *firestore.CollectionRef {
	return cs.client.Collection("banks")
}

// Search applies the indexed filters server-side, the substring filter
// in memory, then sorts and pages the survivors.
func (cs *CatalogStore) Search(ctx context.Context, criteria dto.SearchCriteria) ([]*models.Bank, int, error) {
	q := cs.collection().Query.Where("isActive", "==", true)

	if criteria.State != "" {
		q = q.Where("state", "==", strings.ToUpper(criteria.State))
	}
	if criteria.CharterType != "" {
		q = q.Where("charterType", "==", criteria.CharterType)
	}
	if criteria.Regulator != "" {
		q = q.Where("regulator", "==", criteria.Regulator)
	}
	if criteria.MinAssets != nil {
		q = q.Where("totalAssets", ">=", *criteria.MinAssets)
	}
	if criteria.MaxAssets != nil {
		q = q.Where("totalAssets", "<=", *criteria.MaxAssets)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, err
	}

	banks := make([]*models.Bank, 0, len(docs))
	for _, d := range docs {
		var b models.Bank
		if err := d.DataTo(&b); err != nil {
			return nil, 0, err
		}
		if criteria.Search != "" && !matchesSearch(&b, criteria.Search) {
			continue
		}
		banks = append(banks, &b)
	}

	sortCatalog(banks)

	total := len(banks)
	start := criteria.Offset
	if start > total {
		start = total
	}
	end := start + criteria.Limit
	if end > total {
		end = total
	}

	return banks[start:end], total, nil
}

func (cs *CatalogStore) Get(ctx context.Context, id string) (*models.Bank, error) {
	doc, err := cs.collection().Doc(id).Get(ctx)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var b models.Bank
	if err := doc.DataTo(&b); err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

// GetByIDs resolves ids individually; missing or inactive banks are
// silently skipped, matching the relational store's contract.
func (cs *CatalogStore) GetByIDs(ctx context.Context, ids []string) ([]*models.Bank, error) {
	banks := make([]*models.Bank, 0, len(ids))
	for _, id := range ids {
		bank, err := cs.Get(ctx, id)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return nil, err
		}
		banks = append(banks, bank)
	}
	sortCatalog(banks)
	return banks, nil
}

// Seed upserts sample banks so the demo has something to search.
func (cs *CatalogStore) Seed(ctx context.Context, banks []*models.Bank) error {
	now := time.Now()
	for _, bank := range banks {
		if bank.CreatedAt.IsZero() {
			bank.CreatedAt = now
		}
		bank.UpdatedAt = now
		if _, err := cs.collection().Doc(bank.ID).Set(ctx, bank); err != nil {
			return err
		}
	}
	return nil
}

func matchesSearch(b *models.Bank, term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{b.BankName, b.FDICCertificateNumber, b.City, b.State} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortCatalog(banks []*models.Bank) {
	sort.SliceStable(banks, func(i, j int) bool {
		if banks[i].TotalAssets != banks[j].TotalAssets {
			return banks[i].TotalAssets > banks[j].TotalAssets
		}
		return banks[i].BankName < banks[j].BankName
	})
}
