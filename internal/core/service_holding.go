package core

import (
	"context"
	"fmt"
)

// HoldingCodeExportFields are the columns of a holding code listing.
var HoldingCodeExportFields = []string{"code", "village", "description", "isActive", "createdAt"}

// ListHoldingCodes returns holding codes matching f, ordered by village.
func (s *Service) ListHoldingCodes(ctx context.Context, f HoldingCodeFilter) ([]HoldingCode, error) {
	codes, err := s.store.ListHoldingCodes(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list holding codes: %w", err)
	}
	return codes, nil
}

// GetHoldingCode returns one holding code or ErrNotFound.
func (s *Service) GetHoldingCode(ctx context.Context, id string) (HoldingCode, error) {
	return s.store.GetHoldingCode(ctx, id)
}

// CreateHoldingCode validates and stores a new holding code. A village that
// already has a code returns ErrDuplicate.
func (s *Service) CreateHoldingCode(ctx context.Context, in HoldingCodeInput, actor string) (HoldingCode, error) {
	in.Normalize()
	hc := HoldingCode{
		Code:        in.Code,
		Village:     in.Village,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   actor,
	}
	if in.IsActive != nil {
		hc.IsActive = *in.IsActive
	}
	if err := hc.Validate(); err != nil {
		return HoldingCode{}, err
	}
	created, err := s.store.CreateHoldingCode(ctx, hc)
	if err != nil {
		return HoldingCode{}, err
	}
	s.audit(ctx, AuditEntry{
		Action: ActionHoldingCodeCreate,
		Actor:  actor,
		Reason: fmt.Sprintf("created %s for %s", created.Code, created.Village),
	})
	return created, nil
}

// UpdateHoldingCode replaces the editable fields of holding code id.
// Empty fields in the input keep their current value.
func (s *Service) UpdateHoldingCode(ctx context.Context, id string, in HoldingCodeInput, actor string) (HoldingCode, error) {
	in.Normalize()
	hc, err := s.store.GetHoldingCode(ctx, id)
	if err != nil {
		return HoldingCode{}, err
	}

	if in.Code != "" {
		hc.Code = in.Code
	}
	if in.Village != "" {
		hc.Village = in.Village
	}
	if in.Description != "" {
		hc.Description = in.Description
	}
	if in.IsActive != nil {
		hc.IsActive = *in.IsActive
	}
	if err := hc.Validate(); err != nil {
		return HoldingCode{}, err
	}
	updated, err := s.store.UpdateHoldingCode(ctx, hc)
	if err != nil {
		return HoldingCode{}, err
	}
	s.audit(ctx, AuditEntry{
		Action: ActionHoldingCodeUpdate,
		Actor:  actor,
		Reason: fmt.Sprintf("updated %s (%s)", updated.Code, updated.ID),
	})
	return updated, nil
}

// DeleteHoldingCode removes holding code id.
func (s *Service) DeleteHoldingCode(ctx context.Context, id, actor string) error {
	if err := s.store.DeleteHoldingCode(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, AuditEntry{
		Action: ActionHoldingCodeDelete,
		Actor:  actor,
		Reason: "deleted " + id,
	})
	return nil
}

// ExportHoldingCodes flattens the holding codes matching f.
func (s *Service) ExportHoldingCodes(ctx context.Context, f HoldingCodeFilter) (*ExportResult, error) {
	codes, err := s.ListHoldingCodes(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Name:    "holding-codes",
		Records: codes,
		Table:   BuildTable(codes, HoldingCodeExportFields, nil),
	}, nil
}
