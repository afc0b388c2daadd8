package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/econsim-backend/internal/config"
	"github.com/GregMSThompson/econsim-backend/internal/store/postgres"
	"github.com/GregMSThompson/econsim-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Postgres  *postgres.Store
	Firestore *firestore.Client
	Firebase  *auth.Client
}

// RunAPI wires the production path: Postgres behind the catalog and
// selection stores, Cloud Run JSON logging.
func RunAPI(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	if err := cfg.RequirePostgres(); err != nil {
		return bs, err
	}

	var err error
	bs.Postgres, err = postgres.NewStore(applicationCtx, cfg.DatabaseURL)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

// RunDemo wires the hosted-database demo path: Firestore stores, local
// text logging, best-effort Firebase verification.
func RunDemo(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewTextHandler)

	if err := cfg.RequireFirestore(); err != nil {
		return bs, err
	}

	var err error
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		// demo runs fine on header identity alone
		bs.Log.Warn("firebase auth unavailable, using header identity", "error", err)
		bs.Firebase = nil
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Postgres != nil {
		bs.Postgres.Close()
	}
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
}
