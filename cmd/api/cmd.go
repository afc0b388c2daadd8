package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/econsim-backend/internal/bootstrap"
	"github.com/GregMSThompson/econsim-backend/internal/client/ffiec"
	"github.com/GregMSThompson/econsim-backend/internal/config"
	"github.com/GregMSThompson/econsim-backend/internal/handlers"
	"github.com/GregMSThompson/econsim-backend/internal/middleware"
	"github.com/GregMSThompson/econsim-backend/internal/response"
	"github.com/GregMSThompson/econsim-backend/internal/router"
	"github.com/GregMSThompson/econsim-backend/internal/services"
	"github.com/GregMSThompson/econsim-backend/internal/store/postgres"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.RunAPI(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	cstore := postgres.NewCatalogStore(bs.Postgres)
	sstore := postgres.NewSelectionStore(bs.Postgres)

	// services
	sserv := services.NewSearchService(cstore)
	slserv := services.NewSelectionService(cstore, sstore)
	rserv := services.NewReportService(nil, slserv)
	if cfg.FFIECUsername != "" && cfg.FFIECToken != "" {
		adapter := ffiec.NewAdapter(cfg.FFIECEndpoint, cfg.FFIECUsername, cfg.FFIECToken)
		rserv = services.NewReportService(adapter, slserv)
	}

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.SearchSvc = sserv
	deps.SelectionSvc = slserv
	deps.ReportSvc = rserv

	// router
	r := router.NewRouter(deps, router.Options{
		Middleware:  middleware.NewMiddleware(nil),
		CORSOrigins: cfg.CORSOrigins,
	})
	err = http.ListenAndServe(cfg.HTTPAddress(), r)
	exitOnError("server start failed", err, bs.Log)
}
