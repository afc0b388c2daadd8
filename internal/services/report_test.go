package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/pkg/helpers"
)

type fakeRegulatoryClient struct {
	periods    []string
	periodsErr error
	facsimiles map[string][]byte
	probeErrs  map[string]error
}

func (f *fakeRegulatoryClient) RetrieveReportingPeriods(_ context.Context) ([]string, error) {
	return f.periods, f.periodsErr
}

func (f *fakeRegulatoryClient) RetrieveFacsimile(_ context.Context, rssdID, _ string) ([]byte, error) {
	if err := f.probeErrs[rssdID]; err != nil {
		return nil, err
	}
	return f.facsimiles[rssdID], nil
}

type fakeReportSelections struct {
	view *dto.SelectionView
	err  error
}

func (f *fakeReportSelections) GetSelection(_ context.Context, _ string) (*dto.SelectionView, error) {
	return f.view, f.err
}

func selectionViewOf(banks ...*models.Bank) *dto.SelectionView {
	return &dto.SelectionView{
		SelectedBanks: banks,
		TotalSelected: len(banks),
		MaxAllowed:    models.MaxSelectionSize,
	}
}

func TestSelectionReportsNilClientRejected(t *testing.T) {
	svc := NewReportService(nil, &fakeReportSelections{view: selectionViewOf()})

	_, err := svc.SelectionReports(helpers.TestCtx(), "u1")

	var verr *errs.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSelectionReportsUsesLatestPeriod(t *testing.T) {
	bank := &models.Bank{ID: "b1", RSSDID: "852218", BankName: "JPMorgan Chase Bank"}
	client := &fakeRegulatoryClient{
		periods:    []string{"6/30/2025", "3/31/2025"},
		facsimiles: map[string][]byte{"852218": []byte("<xbrl/>")},
	}
	svc := NewReportService(client, &fakeReportSelections{view: selectionViewOf(bank)})

	reports, err := svc.SelectionReports(helpers.TestCtx(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports.ReportingPeriod != "6/30/2025" {
		t.Fatalf("expected latest period, got %q", reports.ReportingPeriod)
	}
	if len(reports.Reports) != 1 {
		t.Fatalf("expected one status, got %d", len(reports.Reports))
	}

	status := reports.Reports[0]
	if !status.Available || status.SizeBytes != len("<xbrl/>") {
		t.Fatalf("wrong status: %+v", status)
	}
}

func TestSelectionReportsDegradesPerBankFailure(t *testing.T) {
	healthy := &models.Bank{ID: "b1", RSSDID: "852218", BankName: "JPMorgan Chase Bank"}
	broken := &models.Bank{ID: "b2", RSSDID: "480228", BankName: "Bank of America"}
	client := &fakeRegulatoryClient{
		periods:    []string{"6/30/2025"},
		facsimiles: map[string][]byte{"852218": []byte("data")},
		probeErrs:  map[string]error{"480228": errors.New("soap fault")},
	}
	svc := NewReportService(client, &fakeReportSelections{view: selectionViewOf(healthy, broken)})

	reports, err := svc.SelectionReports(helpers.TestCtx(), "u1")
	if err != nil {
		t.Fatalf("per-bank failures must not fail the call: %v", err)
	}
	if len(reports.Reports) != 2 {
		t.Fatalf("expected both statuses, got %d", len(reports.Reports))
	}

	if reports.Reports[0].Error != "" || !reports.Reports[0].Available {
		t.Fatalf("healthy bank misreported: %+v", reports.Reports[0])
	}
	if reports.Reports[1].Error == "" || reports.Reports[1].Available {
		t.Fatalf("broken bank misreported: %+v", reports.Reports[1])
	}
}

func TestSelectionReportsNoPeriodsAvailable(t *testing.T) {
	client := &fakeRegulatoryClient{periods: []string{}}
	svc := NewReportService(client, &fakeReportSelections{view: selectionViewOf()})

	_, err := svc.SelectionReports(helpers.TestCtx(), "u1")

	var nerr *errs.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSelectionReportsPropagatesSelectionError(t *testing.T) {
	client := &fakeRegulatoryClient{periods: []string{"6/30/2025"}}
	svc := NewReportService(client, &fakeReportSelections{err: errs.NewDatabaseError("get selection", errors.New("down"))})

	_, err := svc.SelectionReports(helpers.TestCtx(), "u1")

	var derr *errs.DatabaseError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}
