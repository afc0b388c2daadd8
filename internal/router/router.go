package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/econsim-backend/internal/handlers"
	"github.com/GregMSThompson/econsim-backend/internal/middleware"
)

type Options struct {
	Middleware  *middleware.Middleware
	CORSOrigins []string
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(opts.Middleware.Identity)

	bh := handlers.NewBankHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/health", hh.Health)
	r.Mount("/banks", bh.BankRoutes())
	return r
}
