package handler

import (
	"log/slog"

	"github.com/visitbeacon/internal/db"
	"github.com/visitbeacon/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	ingest *service.IngestService
	logger *slog.Logger
}

// NewAPI constructs a handler set backed by the given database.
func NewAPI(gdb *gorm.DB, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	store := db.NewCampaignStore(gdb)
	return NewAPIWithIngest(service.NewIngestService(store, logger.With("component", "ingest")), logger)
}

// NewAPIWithIngest 允许注入自定义的 IngestService，便于替换存储。
func NewAPIWithIngest(ingest *service.IngestService, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{ingest: ingest, logger: logger}
}
