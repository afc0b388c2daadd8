package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/middleware"
	"github.com/GregMSThompson/econsim-backend/internal/models"
)

type stubSearchService struct {
	searchCalled bool
	lastCriteria dto.SearchCriteria
	searchResult *dto.SearchResult
	searchErr    error

	getCalled bool
	getID     string
	getResult *models.Bank
	getErr    error
}

func (s *stubSearchService) Search(_ context.Context, criteria dto.SearchCriteria) (*dto.SearchResult, error) {
	s.searchCalled = true
	s.lastCriteria = criteria
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if s.searchResult != nil {
		return s.searchResult, nil
	}
	return &dto.SearchResult{Banks: []*models.Bank{}}, nil
}

func (s *stubSearchService) GetBank(_ context.Context, id string) (*models.Bank, error) {
	s.getCalled = true
	s.getID = id
	return s.getResult, s.getErr
}

type stubSelectionService struct {
	lastUserID   string
	lastBankIDs  []string
	lastBankID   string
	lastMaxBanks int
	calls        []string

	view   *dto.SelectionView
	result *dto.SelectionResult
	err    error
}

func (s *stubSelectionService) GetSelection(_ context.Context, userID string) (*dto.SelectionView, error) {
	s.calls = append(s.calls, "get")
	s.lastUserID = userID
	return s.view, s.err
}

func (s *stubSelectionService) ReplaceAll(_ context.Context, userID string, ids []string, maxBanks int) (*dto.SelectionResult, error) {
	s.calls = append(s.calls, "replace")
	s.lastUserID = userID
	s.lastBankIDs = ids
	s.lastMaxBanks = maxBanks
	return s.result, s.err
}

func (s *stubSelectionService) Add(_ context.Context, userID, bankID string) (*dto.SelectionResult, error) {
	s.calls = append(s.calls, "add")
	s.lastUserID = userID
	s.lastBankID = bankID
	return s.result, s.err
}

func (s *stubSelectionService) Remove(_ context.Context, userID, bankID string) (*dto.SelectionResult, error) {
	s.calls = append(s.calls, "remove")
	s.lastUserID = userID
	s.lastBankID = bankID
	return s.result, s.err
}

func (s *stubSelectionService) Clear(_ context.Context, userID string) (*dto.SelectionResult, error) {
	s.calls = append(s.calls, "clear")
	s.lastUserID = userID
	return s.result, s.err
}

type stubReportService struct {
	lastUserID string
	reports    *dto.SelectionReports
	err        error
}

func (s *stubReportService) SelectionReports(_ context.Context, userID string) (*dto.SelectionReports, error) {
	s.lastUserID = userID
	return s.reports, s.err
}

type stubResponseHandler struct {
	successCalled  bool
	successStatus  int
	successData    any
	successMessage string

	handleErrorCalled bool
	handledErr        error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.successCalled = true
	s.successStatus = status
	s.successData = data
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteSuccessMessage(w http.ResponseWriter, _ *http.Request, status int, data any, message string) {
	s.successCalled = true
	s.successStatus = status
	s.successData = data
	s.successMessage = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handledErr = err
	w.WriteHeader(http.StatusInternalServerError)
}

func chiRequest(method, target, paramKey, paramValue, uid string) *http.Request {
	req := requestAs(method, target, "", uid)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(paramKey, paramValue)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func requestAs(method, target, body, uid string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UIDKey, uid)
	return req.WithContext(ctx)
}

func newTestBankHandlers(search *stubSearchService, selection *stubSelectionService, report *stubReportService, resp *stubResponseHandler) *bankHandlers {
	return NewBankHandlers(&Deps{
		ResponseHandler: resp,
		SearchSvc:       search,
		SelectionSvc:    selection,
		ReportSvc:       report,
	})
}

func TestSearchParsesQueryParameters(t *testing.T) {
	search := &stubSearchService{searchResult: &dto.SearchResult{Total: 3}}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(search, &stubSelectionService{}, &stubReportService{}, resp)

	req := requestAs(http.MethodGet, "/banks/search?search=frost&state=tx&limit=10&offset=40&minAssets=1000", "", "u1")
	rr := httptest.NewRecorder()
	h.Search(rr, req)

	if !search.searchCalled {
		t.Fatalf("expected Search to be called")
	}
	c := search.lastCriteria
	if c.Search != "frost" || c.State != "tx" || c.Limit != 10 || c.Offset != 40 {
		t.Fatalf("criteria mismatch: %+v", c)
	}
	if c.MinAssets == nil || *c.MinAssets != 1000 {
		t.Fatalf("minAssets not parsed: %+v", c.MinAssets)
	}
	if resp.successMessage != "Found 3 banks" {
		t.Fatalf("wrong message: %q", resp.successMessage)
	}
}

func TestSearchDefaultsPaging(t *testing.T) {
	search := &stubSearchService{}
	h := newTestBankHandlers(search, &stubSelectionService{}, &stubReportService{}, &stubResponseHandler{})

	req := requestAs(http.MethodGet, "/banks/search", "", "u1")
	h.Search(httptest.NewRecorder(), req)

	if search.lastCriteria.Limit != dto.DefaultSearchLimit || search.lastCriteria.Offset != 0 {
		t.Fatalf("defaults not applied: %+v", search.lastCriteria)
	}
}

func TestSearchRejectsMalformedNumbers(t *testing.T) {
	for _, target := range []string{
		"/banks/search?limit=abc",
		"/banks/search?offset=x",
		"/banks/search?minAssets=big",
		"/banks/search?maxAssets=?",
	} {
		search := &stubSearchService{}
		resp := &stubResponseHandler{}
		h := newTestBankHandlers(search, &stubSelectionService{}, &stubReportService{}, resp)

		h.Search(httptest.NewRecorder(), requestAs(http.MethodGet, target, "", "u1"))

		if search.searchCalled {
			t.Fatalf("%s: service must not be called", target)
		}
		if !resp.handleErrorCalled {
			t.Fatalf("%s: expected HandleError", target)
		}
	}
}

func TestReplaceSelectionDecodesBody(t *testing.T) {
	selection := &stubSelectionService{result: &dto.SelectionResult{Success: true, Message: "Successfully selected 2 banks"}}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

	body := `{"bankIds":["a","b"],"maxBanks":10}`
	h.ReplaceSelection(httptest.NewRecorder(), requestAs(http.MethodPost, "/banks/selection", body, "u1"))

	if selection.lastUserID != "u1" {
		t.Fatalf("wrong user: %q", selection.lastUserID)
	}
	if len(selection.lastBankIDs) != 2 || selection.lastMaxBanks != 10 {
		t.Fatalf("body not decoded: ids=%v max=%d", selection.lastBankIDs, selection.lastMaxBanks)
	}
	if resp.successMessage != "Successfully selected 2 banks" {
		t.Fatalf("wrong message: %q", resp.successMessage)
	}
}

func TestReplaceSelectionRequiresBankIDs(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"maxBanks":5}`, `not json`} {
		selection := &stubSelectionService{}
		resp := &stubResponseHandler{}
		h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

		h.ReplaceSelection(httptest.NewRecorder(), requestAs(http.MethodPost, "/banks/selection", body, "u1"))

		if len(selection.calls) != 0 {
			t.Fatalf("body %q: service must not be called", body)
		}
		var verr *errs.ValidationError
		if !resp.handleErrorCalled || !asValidation(resp.handledErr, &verr) {
			t.Fatalf("body %q: expected ValidationError, got %v", body, resp.handledErr)
		}
	}
}

func TestReplaceSelectionRejectsOversizedList(t *testing.T) {
	ids := make([]string, 0, models.MaxSelectionSize+1)
	for i := 0; i <= models.MaxSelectionSize; i++ {
		ids = append(ids, fmt.Sprintf("%q", fmt.Sprintf("bank-%d", i)))
	}
	body := `{"bankIds":[` + strings.Join(ids, ",") + `]}`

	selection := &stubSelectionService{}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

	h.ReplaceSelection(httptest.NewRecorder(), requestAs(http.MethodPost, "/banks/selection", body, "u1"))

	if len(selection.calls) != 0 {
		t.Fatalf("service must not be called")
	}
	var verr *errs.ValidationError
	if !asValidation(resp.handledErr, &verr) {
		t.Fatalf("expected ValidationError, got %v", resp.handledErr)
	}
}

func TestAddToSelectionRequiresBankID(t *testing.T) {
	selection := &stubSelectionService{}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

	h.AddToSelection(httptest.NewRecorder(), requestAs(http.MethodPost, "/banks/selection/add", `{}`, "u1"))

	if len(selection.calls) != 0 {
		t.Fatalf("service must not be called")
	}
	var verr *errs.ValidationError
	if !asValidation(resp.handledErr, &verr) {
		t.Fatalf("expected ValidationError, got %v", resp.handledErr)
	}
}

func TestAddToSelectionPassesIdentity(t *testing.T) {
	selection := &stubSelectionService{result: &dto.SelectionResult{Success: true}}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, &stubResponseHandler{})

	h.AddToSelection(httptest.NewRecorder(), requestAs(http.MethodPost, "/banks/selection/add", `{"bankId":"b7"}`, "user-42"))

	if selection.lastUserID != "user-42" || selection.lastBankID != "b7" {
		t.Fatalf("wrong call: user=%q bank=%q", selection.lastUserID, selection.lastBankID)
	}
}

func TestRemoveFromSelectionPassesIdentity(t *testing.T) {
	selection := &stubSelectionService{result: &dto.SelectionResult{Success: true}}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, &stubResponseHandler{})

	h.RemoveFromSelection(httptest.NewRecorder(), requestAs(http.MethodDelete, "/banks/selection/remove", `{"bankId":"b7"}`, "user-42"))

	if selection.lastUserID != "user-42" || selection.lastBankID != "b7" {
		t.Fatalf("wrong call: user=%q bank=%q", selection.lastUserID, selection.lastBankID)
	}
	if selection.calls[len(selection.calls)-1] != "remove" {
		t.Fatalf("wrong operation: %v", selection.calls)
	}
}

func TestClearSelection(t *testing.T) {
	selection := &stubSelectionService{result: &dto.SelectionResult{Success: true, Message: "Successfully selected 0 banks"}}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

	h.ClearSelection(httptest.NewRecorder(), requestAs(http.MethodDelete, "/banks/selection/clear", "", "u1"))

	if selection.calls[0] != "clear" || selection.lastUserID != "u1" {
		t.Fatalf("wrong call: %v user=%q", selection.calls, selection.lastUserID)
	}
	if !resp.successCalled || resp.successStatus != http.StatusOK {
		t.Fatalf("expected 200 success envelope")
	}
}

func TestGetSelection(t *testing.T) {
	view := &dto.SelectionView{TotalSelected: 2, MaxAllowed: 30}
	selection := &stubSelectionService{view: view}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, selection, &stubReportService{}, resp)

	h.GetSelection(httptest.NewRecorder(), requestAs(http.MethodGet, "/banks/selection", "", "u1"))

	if resp.successData != view {
		t.Fatalf("view not written: %+v", resp.successData)
	}
}

func TestGetBankPropagatesServiceError(t *testing.T) {
	search := &stubSearchService{getErr: errs.NewNotFoundError("Bank not found")}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(search, &stubSelectionService{}, &stubReportService{}, resp)

	r := chiRequest(http.MethodGet, "/banks/b9", "id", "b9", "u1")
	h.GetBank(httptest.NewRecorder(), r)

	if !resp.handleErrorCalled {
		t.Fatalf("expected HandleError")
	}
	if search.getID != "b9" {
		t.Fatalf("wrong id: %q", search.getID)
	}
}

func TestSelectionReportsEndpoint(t *testing.T) {
	report := &stubReportService{reports: &dto.SelectionReports{ReportingPeriod: "6/30/2025"}}
	resp := &stubResponseHandler{}
	h := newTestBankHandlers(&stubSearchService{}, &stubSelectionService{}, report, resp)

	h.SelectionReports(httptest.NewRecorder(), requestAs(http.MethodGet, "/banks/selection/reports", "", "u1"))

	if report.lastUserID != "u1" {
		t.Fatalf("wrong user: %q", report.lastUserID)
	}
	if resp.successData != report.reports {
		t.Fatalf("reports not written")
	}
}

func asValidation(err error, target **errs.ValidationError) bool {
	return errors.As(err, target)
}
