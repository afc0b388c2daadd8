package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/econsim-backend/internal/dto"
	"github.com/GregMSThompson/econsim-backend/internal/errs"
	"github.com/GregMSThompson/econsim-backend/internal/middleware"
	"github.com/GregMSThompson/econsim-backend/internal/models"
	"github.com/GregMSThompson/econsim-backend/internal/response"
	"github.com/GregMSThompson/econsim-backend/pkg/helpers"
)

type SearchService interface {
	Search(ctx context.Context, criteria dto.SearchCriteria) (*dto.SearchResult, error)
	GetBank(ctx context.Context, id string) (*models.Bank, error)
}

type SelectionService interface {
	GetSelection(ctx context.Context, userID string) (*dto.SelectionView, error)
	ReplaceAll(ctx context.Context, userID string, ids []string, maxBanks int) (*dto.SelectionResult, error)
	Add(ctx context.Context, userID, bankID string) (*dto.SelectionResult, error)
	Remove(ctx context.Context, userID, bankID string) (*dto.SelectionResult, error)
	Clear(ctx context.Context, userID string) (*dto.SelectionResult, error)
}

type ReportService interface {
	SelectionReports(ctx context.Context, userID string) (*dto.SelectionReports, error)
}

type bankHandlers struct {
	ResponseHandler response.ResponseHandler
	SearchSvc       SearchService
	SelectionSvc    SelectionService
	ReportSvc       ReportService
}

func NewBankHandlers(deps *Deps) *bankHandlers {
	return &bankHandlers{
		ResponseHandler: deps.ResponseHandler,
		SearchSvc:       deps.SearchSvc,
		SelectionSvc:    deps.SelectionSvc,
		ReportSvc:       deps.ReportSvc,
	}
}

func (h *bankHandlers) BankRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.Search)
	// selection routes must register before the /{id} wildcard
	r.Route("/selection", func(r chi.Router) {
		r.Get("/", h.GetSelection)
		r.Post("/", h.ReplaceSelection)
		r.Post("/add", h.AddToSelection)
		r.Delete("/remove", h.RemoveFromSelection)
		r.Delete("/clear", h.ClearSelection)
		r.Get("/reports", h.SelectionReports)
	})
	r.Get("/{id}", h.GetBank)
	return r
}

func (h *bankHandlers) Search(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseSearchCriteria(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	result, err := h.SearchSvc.Search(r.Context(), criteria)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccessMessage(w, r, http.StatusOK, result,
		"Found "+strconv.Itoa(result.Total)+" banks")
}

func (h *bankHandlers) GetBank(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("Bank ID is required"))
		return
	}

	bank, err := h.SearchSvc.GetBank(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, bank)
}

func (h *bankHandlers) GetSelection(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	view, err := h.SelectionSvc.GetSelection(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}

func (h *bankHandlers) ReplaceSelection(w http.ResponseWriter, r *http.Request) {
	var body dto.ReplaceSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("bankIds array is required"))
		return
	}
	if body.BankIDs == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("bankIds array is required"))
		return
	}
	if len(body.BankIDs) > models.MaxSelectionSize {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("Cannot select more than 30 banks"))
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.SelectionSvc.ReplaceAll(r.Context(), uid, body.BankIDs, helpers.Value(body.MaxBanks))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccessMessage(w, r, http.StatusOK, result, result.Message)
}

func (h *bankHandlers) AddToSelection(w http.ResponseWriter, r *http.Request) {
	bankID, err := parseBankID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.SelectionSvc.Add(r.Context(), uid, bankID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccessMessage(w, r, http.StatusOK, result, result.Message)
}

func (h *bankHandlers) RemoveFromSelection(w http.ResponseWriter, r *http.Request) {
	bankID, err := parseBankID(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	result, err := h.SelectionSvc.Remove(r.Context(), uid, bankID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccessMessage(w, r, http.StatusOK, result, result.Message)
}

func (h *bankHandlers) ClearSelection(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	result, err := h.SelectionSvc.Clear(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccessMessage(w, r, http.StatusOK, result, result.Message)
}

func (h *bankHandlers) SelectionReports(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())

	reports, err := h.ReportSvc.SelectionReports(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, reports)
}

func parseBankID(r *http.Request) (string, error) {
	var body dto.SelectionMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", errs.NewValidationError("bankId is required")
	}
	if body.BankID == "" {
		return "", errs.NewValidationError("bankId is required")
	}
	return body.BankID, nil
}

// parseSearchCriteria maps query parameters onto criteria, applying the
// documented defaults for absent limit/offset. Bounds are validated by the
// service so explicit limit=0 still fails.
func parseSearchCriteria(r *http.Request) (dto.SearchCriteria, error) {
	q := r.URL.Query()

	criteria := dto.SearchCriteria{
		Search:      q.Get("search"),
		State:       q.Get("state"),
		CharterType: q.Get("charterType"),
		Regulator:   q.Get("regulator"),
		Limit:       dto.DefaultSearchLimit,
		Offset:      0,
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, errs.NewValidationError("limit must be an integer")
		}
		criteria.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, errs.NewValidationError("offset must be an integer")
		}
		criteria.Offset = offset
	}
	if raw := q.Get("minAssets"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errs.NewValidationError("minAssets must be a number")
		}
		criteria.MinAssets = helpers.Ptr(min)
	}
	if raw := q.Get("maxAssets"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errs.NewValidationError("maxAssets must be a number")
		}
		criteria.MaxAssets = helpers.Ptr(max)
	}

	return criteria, nil
}
