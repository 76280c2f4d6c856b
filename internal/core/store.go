package core

import "context"

// ClientStore persists ClientRef entities. Finders return ErrNotFound when
// nothing matches.
type ClientStore interface {
	FindClientByNationalID(ctx context.Context, nationalID string) (ClientRef, error)
	FindClientByPhone(ctx context.Context, phone string) (ClientRef, error)
	FindClientByName(ctx context.Context, name string) (ClientRef, error)
	// CreateClient inserts c and returns it with ID and CreatedAt set.
	// A clash on national ID returns ErrDuplicate.
	CreateClient(ctx context.Context, c ClientRef) (ClientRef, error)
	ListClients(ctx context.Context, f ClientFilter) ([]ClientRef, error)
}

// RecordStore persists service records, one collection per kind.
type RecordStore interface {
	SerialExists(ctx context.Context, kind Kind, serial string) (bool, error)
	// SaveRecord inserts rec and sets its ID and CreatedAt. A clash on the
	// kind's serial returns ErrDuplicate; constraint violations return
	// ErrPersistenceValidation.
	SaveRecord(ctx context.Context, rec Record) error
	// ListRecords returns records newest first. newRecord allocates the
	// concrete type to decode into.
	ListRecords(ctx context.Context, kind Kind, f ExportFilter, newRecord func() Record) ([]Record, error)
}

// HoldingCodeStore persists the holding code reference table.
type HoldingCodeStore interface {
	ListHoldingCodes(ctx context.Context, f HoldingCodeFilter) ([]HoldingCode, error)
	GetHoldingCode(ctx context.Context, id string) (HoldingCode, error)
	CreateHoldingCode(ctx context.Context, hc HoldingCode) (HoldingCode, error)
	UpdateHoldingCode(ctx context.Context, hc HoldingCode) (HoldingCode, error)
	DeleteHoldingCode(ctx context.Context, id string) error
}

// Store is everything the service needs from persistence.
type Store interface {
	ClientStore
	RecordStore
	HoldingCodeStore
	AuditStore
}
