package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Aliases used only by the client import.
var (
	ClientEmailAliases   = Aliases("email", "Email", "client_email", "البريد الإلكتروني")
	ClientAddressAliases = Aliases("detailedAddress", "Detailed Address", "client_address", "العنوان التفصيلي")
	ClientStatusAliases  = Aliases("status", "Status", "الحالة")
)

// ClientStatusMap normalizes client status tokens.
var ClientStatusMap = EnumMap{
	"active":     DefaultClientStatus,
	"نشط":        DefaultClientStatus,
	"inactive":   InactiveStatus,
	"غير نشط":    InactiveStatus,
	"not active": InactiveStatus,
	"disabled":   InactiveStatus,
}

// ClientExportFields are the columns of a client export, in order.
var ClientExportFields = []string{
	"name", "nationalId", "phone", "email", "village", "detailedAddress", "status", "createdAt",
}

// ClientTemplateHeaders and ClientTemplateRow form the client import template.
var (
	ClientTemplateHeaders = []string{
		"name", "nationalId", "phone", "email", "village", "detailedAddress", "status",
	}
	ClientTemplateRow = map[string]string{
		"name":            "عطا الله ابراهيم البلوي",
		"nationalId":      "1028544243",
		"phone":           "501834996",
		"email":           "client@example.com",
		"village":         "فضلا",
		"detailedAddress": "منطقة فضلا",
		"status":          DefaultClientStatus,
	}
)

// ClientFromRow builds a new client from an import row. A name is required;
// a missing national ID gets a temporary placeholder.
func ClientFromRow(row RawRow, actor string, now time.Time) (ClientRef, error) {
	name, ok := ResolveString(row, ClientNameAliases)
	if !ok {
		return ClientRef{}, NewFieldError("name", "", ErrFieldMissing)
	}

	nationalID := StringOr(row, ClientIDAliases, "")
	if nationalID == "" {
		nationalID = TempNationalID(now)
	} else {
		nationalID = PadNationalID(nationalID)
	}

	c := ClientRef{
		Name:            name,
		NationalID:      nationalID,
		Phone:           normalizeDigits(StringOr(row, ClientPhoneAliases, "")),
		Email:           StringOr(row, ClientEmailAliases, ""),
		Village:         StringOr(row, ClientVillageAliases, DefaultVillage),
		DetailedAddress: StringOr(row, ClientAddressAliases, ""),
		Status:          NormalizeEnum(Value(row, ClientStatusAliases), ClientStatusMap, DefaultClientStatus),
		CreatedBy:       actor,
	}
	return c, c.Validate()
}

// Validate checks the client's field limits.
func (c ClientRef) Validate() error {
	if c.Name == "" {
		return NewFieldError("name", "", ErrFieldMissing)
	}
	if err := checkLength("name", c.Name, 200); err != nil {
		return err
	}
	if err := checkLength("nationalId", c.NationalID, 50); err != nil {
		return err
	}
	if err := checkLength("phone", c.Phone, 30); err != nil {
		return err
	}
	return checkLength("detailedAddress", c.DetailedAddress, 500)
}

// importClientRow is the RowFunc for client imports.
func (s *Service) importClientRow(actor string, now time.Time) RowFunc {
	return func(ctx context.Context, _ int, row RawRow) (ImportedRecord, error) {
		c, err := ClientFromRow(row, actor, now)
		if err != nil {
			return ImportedRecord{}, err
		}
		created, err := s.store.CreateClient(ctx, c)
		if errors.Is(err, ErrDuplicate) {
			return ImportedRecord{}, NewFieldError("nationalId", c.NationalID,
				fmt.Errorf("client already exists: %w", ErrDuplicate))
		}
		if err != nil {
			return ImportedRecord{}, err
		}
		return ImportedRecord{ID: created.ID}, nil
	}
}
