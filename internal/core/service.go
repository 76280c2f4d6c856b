package core

import (
	"time"
)

// DefaultImportTimeout bounds one import batch.
const DefaultImportTimeout = 10 * time.Minute

// Export limits applied when a request gives none or too much.
const (
	DefaultExportLimit = 1000
	MaxExportLimit     = 10000
)

// ServiceOptions tunes a Service. Zero values select defaults.
type ServiceOptions struct {
	ChunkSize      int
	MaxConcurrent  int
	MaxWait        time.Duration
	ImportTimeout  time.Duration
	ExportLimit    int
	MaxExportLimit int
}

// Service provides the ingestion and export operations used by the HTTP
// layer. It is safe for concurrent use.
type Service struct {
	store   Store
	engine  *Engine
	limiter *ImportLimiter
	clients *ClientResolver

	importTimeout  time.Duration
	exportLimit    int
	maxExportLimit int

	now func() time.Time
}

// NewService creates a new Service instance.
func NewService(store Store, opts ServiceOptions) *Service {
	if opts.ImportTimeout <= 0 {
		opts.ImportTimeout = DefaultImportTimeout
	}
	if opts.ExportLimit <= 0 {
		opts.ExportLimit = DefaultExportLimit
	}
	if opts.MaxExportLimit <= 0 {
		opts.MaxExportLimit = MaxExportLimit
	}

	return &Service{
		store:          store,
		engine:         NewEngine(opts.ChunkSize),
		limiter:        NewImportLimiter(opts.MaxConcurrent, opts.MaxWait),
		clients:        NewClientResolver(store),
		importTimeout:  opts.ImportTimeout,
		exportLimit:    opts.ExportLimit,
		maxExportLimit: opts.MaxExportLimit,
		now:            time.Now,
	}
}

// Limiter exposes the import limiter for health checks and shutdown.
func (s *Service) Limiter() *ImportLimiter {
	return s.limiter
}

// ListKinds returns information about all registered kinds.
func (s *Service) ListKinds() []KindInfo {
	defs := All()
	infos := make([]KindInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}
