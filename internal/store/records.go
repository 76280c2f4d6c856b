package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

func (s *Store) SerialExists(ctx context.Context, kind core.Kind, serial string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM service_records WHERE kind = $1 AND serial = $2)",
		string(kind), serial,
	).Scan(&exists)
	return exists, mapError(err)
}

// SaveRecord inserts rec and sets its ID and CreatedAt.
func (s *Store) SaveRecord(ctx context.Context, rec core.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", rec.Kind(), err)
	}

	base := rec.Base()
	category := pgtype.Text{}
	if v, ok := rec.Values()["interventionCategory"].(string); ok && v != "" {
		category = pgtype.Text{String: v, Valid: true}
	}

	err = s.db.QueryRow(ctx, `
		INSERT INTO service_records (kind, serial, record_date, client_id, intervention_category, data, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at`,
		string(rec.Kind()), rec.Serial(), pgtype.Date{Time: base.Date, Valid: true},
		base.Client.ID, category, data, base.CreatedBy,
	).Scan(&base.ID, &base.CreatedAt)
	return mapError(err)
}

// ListRecords returns the records of kind matching f, newest first, with
// the current client row attached.
func (s *Store) ListRecords(ctx context.Context, kind core.Kind, f core.ExportFilter, newRecord func() core.Record) ([]core.Record, error) {
	conditions := []string{"r.kind = $1"}
	args := []any{string(kind)}
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.StartDate != nil {
		add("r.record_date >= $%d", pgtype.Date{Time: *f.StartDate, Valid: true})
	}
	if f.EndDate != nil {
		add("r.record_date <= $%d", pgtype.Date{Time: *f.EndDate, Valid: true})
	}
	if f.InterventionCategory != "" {
		add("lower(r.intervention_category) = lower($%d)", f.InterventionCategory)
	}

	query := fmt.Sprintf(`
		SELECT r.id::text, r.data, r.created_at, %s
		FROM service_records r
		JOIN clients c ON c.id = r.client_id
		WHERE %s
		ORDER BY r.record_date DESC, r.created_at DESC`,
		prefixed("c", clientColumns), strings.Join(conditions, " AND "),
	)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	records := make([]core.Record, 0)
	for rows.Next() {
		var (
			id        string
			data      []byte
			createdAt time.Time
			client    core.ClientRef
		)
		err := rows.Scan(
			&id, &data, &createdAt,
			&client.ID, &client.Name, &client.NationalID, &client.Phone, &client.Email, &client.Village,
			&client.DetailedAddress, &client.Status, &client.CreatedBy, &client.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec := newRecord()
		if err := json.Unmarshal(data, rec); err != nil {
			return nil, fmt.Errorf("decode %s record %s: %w", kind, id, err)
		}
		base := rec.Base()
		base.ID = id
		base.CreatedAt = createdAt
		base.Client = client
		records = append(records, rec)
	}
	return records, rows.Err()
}

// prefixed qualifies each column of a column list with alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
