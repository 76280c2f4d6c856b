package core

import (
	"strings"
	"time"
)

// HoldingCode is a reference entry assigning a code to a village.
// Village is unique across the table.
type HoldingCode struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Village     string    `json:"village"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HoldingCodeFilter narrows a holding code listing.
type HoldingCodeFilter struct {
	Village string
	Active  *bool
}

// HoldingCodeInput is the editable part of a holding code.
// A nil IsActive keeps the current value (true on create).
type HoldingCodeInput struct {
	Code        string `json:"code"`
	Village     string `json:"village"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// Normalize trims the input fields.
func (in *HoldingCodeInput) Normalize() {
	in.Code = strings.TrimSpace(in.Code)
	in.Village = strings.TrimSpace(in.Village)
	in.Description = strings.TrimSpace(in.Description)
}

// Validate checks required fields and lengths.
func (hc HoldingCode) Validate() error {
	if hc.Code == "" {
		return NewFieldError("code", "", ErrFieldMissing)
	}
	if hc.Village == "" {
		return NewFieldError("village", "", ErrFieldMissing)
	}
	if err := checkLength("code", hc.Code, 50); err != nil {
		return err
	}
	if err := checkLength("village", hc.Village, 100); err != nil {
		return err
	}
	return checkLength("description", hc.Description, 200)
}

// Values returns the holding code's export fields.
func (hc HoldingCode) Values() map[string]any {
	return map[string]any{
		"code":        hc.Code,
		"village":     hc.Village,
		"description": hc.Description,
		"isActive":    hc.IsActive,
		"createdAt":   hc.CreatedAt,
	}
}
