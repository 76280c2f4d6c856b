package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

const holdingColumns = `id::text, code, village, description, is_active, created_by, created_at, updated_at`

func scanHoldingCode(row pgx.Row) (core.HoldingCode, error) {
	var hc core.HoldingCode
	err := row.Scan(
		&hc.ID, &hc.Code, &hc.Village, &hc.Description, &hc.IsActive,
		&hc.CreatedBy, &hc.CreatedAt, &hc.UpdatedAt,
	)
	return hc, err
}

func (s *Store) ListHoldingCodes(ctx context.Context, f core.HoldingCodeFilter) ([]core.HoldingCode, error) {
	var (
		conditions []string
		args       []any
	)
	if f.Village != "" {
		args = append(args, f.Village)
		conditions = append(conditions, fmt.Sprintf("village = $%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := "SELECT " + holdingColumns + " FROM holding_codes"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY village"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	codes := make([]core.HoldingCode, 0)
	for rows.Next() {
		hc, err := scanHoldingCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, hc)
	}
	return codes, rows.Err()
}

func (s *Store) GetHoldingCode(ctx context.Context, id string) (core.HoldingCode, error) {
	hc, err := scanHoldingCode(s.db.QueryRow(ctx,
		"SELECT "+holdingColumns+" FROM holding_codes WHERE id = $1", id))
	return hc, mapError(err)
}

func (s *Store) CreateHoldingCode(ctx context.Context, hc core.HoldingCode) (core.HoldingCode, error) {
	created, err := scanHoldingCode(s.db.QueryRow(ctx, `
		INSERT INTO holding_codes (code, village, description, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+holdingColumns,
		hc.Code, hc.Village, hc.Description, hc.IsActive, hc.CreatedBy,
	))
	return created, mapError(err)
}

func (s *Store) UpdateHoldingCode(ctx context.Context, hc core.HoldingCode) (core.HoldingCode, error) {
	updated, err := scanHoldingCode(s.db.QueryRow(ctx, `
		UPDATE holding_codes
		SET code = $2, village = $3, description = $4, is_active = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+holdingColumns,
		hc.ID, hc.Code, hc.Village, hc.Description, hc.IsActive,
	))
	return updated, mapError(err)
}

func (s *Store) DeleteHoldingCode(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM holding_codes WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
