package dto

import (
	"github.com/GregMSThompson/econsim-backend/internal/models"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// SearchCriteria carries the optional bank-catalog filters. All supplied
// filters are ANDed; Search itself matches as a case-insensitive substring
// against name, FDIC certificate number, city and state.
type SearchCriteria struct {
	Search      string
	State       string
	CharterType string
	Regulator   string
	MinAssets   *float64
	MaxAssets   *float64
	Limit       int
	Offset      int
}

// SearchResult is one page of catalog matches plus the paging envelope.
type SearchResult struct {
	Banks   []*models.Bank `json:"banks"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	HasMore bool           `json:"hasMore"`
}
