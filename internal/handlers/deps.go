package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/econsim-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	SearchSvc       SearchService
	SelectionSvc    SelectionService
	ReportSvc       ReportService
}
