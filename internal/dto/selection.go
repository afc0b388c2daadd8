package dto

import (
	"github.com/GregMSThompson/econsim-backend/internal/models"
)

// ReplaceSelectionRequest is the POST /banks/selection body.
type ReplaceSelectionRequest struct {
	BankIDs  []string `json:"bankIds"`
	MaxBanks *int     `json:"maxBanks,omitempty"`
}

// SelectionMutationRequest is the body of the single-bank add/remove calls.
type SelectionMutationRequest struct {
	BankID string `json:"bankId"`
}

// SelectionResult is returned by every selection operation. Success is
// false for the two no-op outcomes (already selected, not in selection);
// those are not errors.
type SelectionResult struct {
	Success       bool           `json:"success"`
	SelectedBanks []*models.Bank `json:"selectedBanks"`
	TotalSelected int            `json:"totalSelected"`
	MaxAllowed    int            `json:"maxAllowed"`
	Message       string         `json:"message,omitempty"`
}

// SelectionView is the GET /banks/selection payload: the raw record plus
// the resolved bank rows.
type SelectionView struct {
	Selection     *models.BankSelection `json:"selection"`
	SelectedBanks []*models.Bank        `json:"selectedBanks"`
	TotalSelected int                   `json:"totalSelected"`
	MaxAllowed    int                   `json:"maxAllowed"`
}
