package firestoredb

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/store"
)

// SelectionStore keeps one document per user, keyed by user id. The
// version field mirrors the relational store's optimistic guard; the
// replace runs in a transaction so a stale version never lands.
type SelectionStore struct {
	client *firestore.Client
}

func NewSelectionStore(client *firestore.Client) *SelectionStore {
	return &SelectionStore{client: client}
}

func (ss *SelectionStore) doc(userID string) *firestore.DocumentRef {
	return ss.client.Collection("bank_selections").Doc(userID)
}

func (ss *SelectionStore) Get(ctx context.Context, userID string) (*models.BankSelection, error) {
	snap, err := ss.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var sel models.BankSelection
	if err := snap.DataTo(&sel); err != nil {
		return nil, err
	}
	if sel.SelectedBanks == nil {
		sel.SelectedBanks = []string{}
	}
	return &sel, nil
}

func (ss *SelectionStore) Create(ctx context.Context, userID string) (*models.BankSelection, error) {
	now := time.Now()
	sel := &models.BankSelection{
		ID:            uuid.NewString(),
		UserID:        userID,
		SelectedBanks: []string{},
		MaxBanks:      models.MaxSelectionSize,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := ss.doc(userID).Create(ctx, sel); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ss.Get(ctx, userID)
		}
		return nil, err
	}
	return sel, nil
}

func (ss *SelectionStore) ReplaceAll(ctx context.Context, userID string, ids []string, maxBanks int, expectedVersion int64) (*models.BankSelection, error) {
	if ids == nil {
		ids = []string{}
	}

	var updated models.BankSelection

	err := ss.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ss.doc(userID))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return store.ErrNotFound
			}
			return err
		}

		var current models.BankSelection
		if err := snap.DataTo(&current); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return store.ErrConflict
		}

		updated = current
		updated.SelectedBanks = ids
		updated.MaxBanks = maxBanks
		updated.Version = current.Version + 1
		updated.UpdatedAt = time.Now()

		return tx.Set(ss.doc(userID), &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
