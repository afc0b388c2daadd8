package models

import (
	"time"
)

// MaxSelectionSize is the hard upper bound on how many banks a user may
// curate, regardless of the per-record cap.
const MaxSelectionSize = 30

// BankSelection holds one user's curated set of bank ids. At most one
// record exists per user; it is created lazily and never deleted (clearing
// empties the list but keeps the record). Version guards the
// read-modify-write cycle: every replace must present the version it read.
type BankSelection struct {
	ID            string    `firestore:"id" json:"id"`
	UserID        string    `firestore:"userId" json:"userId"`
	SelectedBanks []string  `firestore:"selectedBanks" json:"selectedBanks"`
	MaxBanks      int       `firestore:"maxBanks" json:"maxBanks"`
	Version       int64     `firestore:"version" json:"-"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Contains reports whether bankID is already part of the selection.
func (s *BankSelection) Contains(bankID string) bool {
	for _, id := range s.SelectedBanks {
		if id == bankID {
			return true
		}
	}
	return false
}
