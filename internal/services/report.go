package services

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/pkg/logger"
)

type regulatoryClient interface {
	RetrieveReportingPeriods(ctx context.Context) ([]string, error)
	RetrieveFacsimile(ctx context.Context, rssdID string, reportingPeriod string) ([]byte, error)
}

type reportSelectionService interface {
	GetSelection(ctx context.Context, userID string) (*dto.SelectionView, error)
}

// reportService checks UBPR report availability for a user's selected
// banks. The regulatory client may be nil when no FFIEC credentials are
// configured; the endpoint then reports itself unavailable.
type reportService struct {
	client     regulatoryClient
	selections reportSelectionService
}

func NewReportService(client regulatoryClient, selections reportSelectionService) *reportService {
	return &reportService{
		client:     client,
		selections: selections,
	}
}

// SelectionReports resolves the latest reporting period and probes each
// selected bank for a facsimile. Per-bank failures degrade to a status
// entry instead of failing the whole call.
func (s *reportService) SelectionReports(ctx context.Context, userID string) (*dto.SelectionReports, error) {
	if s.client == nil {
		return nil, errs.NewValidationError("Regulatory data access is not configured")
	}

	view, err := s.selections.GetSelection(ctx, userID)
	if err != nil {
		return nil, err
	}

	periods, err := s.client.RetrieveReportingPeriods(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("retrieve reporting periods", err)
	}
	if len(periods) == 0 {
		return nil, errs.NewNotFoundError("No reporting periods available")
	}
	latest := periods[0]

	log := logger.FromContext(ctx)
	reports := make([]dto.BankReportStatus, 0, len(view.SelectedBanks))
	for _, bank := range view.SelectedBanks {
		reports = append(reports, s.probe(ctx, bank, latest, log))
	}

	return &dto.SelectionReports{
		ReportingPeriod: latest,
		Reports:         reports,
	}, nil
}

func (s *reportService) probe(ctx context.Context, bank *models.Bank, period string, log *slog.Logger) dto.BankReportStatus {
	status := dto.BankReportStatus{
		BankID:   bank.ID,
		RSSDID:   bank.RSSDID,
		BankName: bank.BankName,
	}

	data, err := s.client.RetrieveFacsimile(ctx, bank.RSSDID, period)
	if err != nil {
		log.Warn("facsimile retrieval failed", "rssd_id", bank.RSSDID, "error", err)
		status.Error = "report unavailable"
		return status
	}

	status.Available = len(data) > 0
	status.SizeBytes = len(data)
	return status
}
