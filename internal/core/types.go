package core

import (
	"context"
	"time"
)

// RawRow is one record's worth of loosely-typed input, keyed by the raw
// column header or JSON key. Keys are not normalized.
type RawRow map[string]any

// Kind identifies a record collection. The value doubles as the URL segment.
type Kind string

const (
	KindVaccination     Kind = "vaccination"
	KindParasiteControl Kind = "parasite-control"
	KindMobileClinic    Kind = "mobile-clinics"
	KindEquineHealth    Kind = "equine-health"
	KindLaboratory      Kind = "laboratories"
	KindClient          Kind = "clients"
)

// Import sources recorded on batch results.
const (
	SourceUpload  = "upload"
	SourceWebhook = "webhook"
)

// Client defaults applied on creation.
const (
	DefaultVillage      = "غير محدد"
	DefaultClientStatus = "نشط"
	InactiveStatus      = "غير نشط"
)

// MinNationalIDLength is the length national IDs are left-padded to.
const MinNationalIDLength = 10

// ClientRef is the canonical client entity a service record refers to.
type ClientRef struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	NationalID      string    `json:"nationalId"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Village         string    `json:"village"`
	DetailedAddress string    `json:"detailedAddress,omitempty"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"createdBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Values returns the client's export fields.
func (c ClientRef) Values() map[string]any {
	return map[string]any{
		"name":            c.Name,
		"nationalId":      c.NationalID,
		"phone":           c.Phone,
		"email":           c.Email,
		"village":         c.Village,
		"detailedAddress": c.DetailedAddress,
		"status":          c.Status,
		"createdAt":       c.CreatedAt,
	}
}

// ClientInput is the identity information a row carries about its client.
type ClientInput struct {
	Name       string
	NationalID string
	Phone      string
	Village    string
}

// ClientFilter narrows a client listing.
type ClientFilter struct {
	Status string
	Limit  int
}

// ExportFilter narrows a record listing for export.
type ExportFilter struct {
	StartDate            *time.Time
	EndDate              *time.Time // inclusive
	InterventionCategory string
	Limit                int
}

// ImportedRecord references one successfully persisted row.
type ImportedRecord struct {
	Row    int    `json:"row"`
	ID     string `json:"id"`
	Serial string `json:"serial,omitempty"`
}

// RowError describes why one input row failed.
type RowError struct {
	Row     int    `json:"rowIndex"` // 1-based position in the input
	Field   string `json:"field,omitempty"`
	Message string `json:"error"`
	Code    string `json:"code"`
	Data    RawRow `json:"data,omitempty"`
}

// BatchResult is the aggregate outcome of one import call.
// SuccessRows + ErrorRows always equals TotalRows.
type BatchResult struct {
	BatchID     string           `json:"batchId"`
	Kind        Kind             `json:"tableType"`
	Source      string           `json:"source"`
	TotalRows   int              `json:"totalRows"`
	SuccessRows int              `json:"successRows"`
	ErrorRows   int              `json:"errorRows"`
	Imported    []ImportedRecord `json:"imported"`
	Errors      []RowError       `json:"errors"`
	Duration    time.Duration    `json:"-"`
}

// RowFunc processes and persists a single row. index is 0-based.
type RowFunc func(ctx context.Context, index int, row RawRow) (ImportedRecord, error)
