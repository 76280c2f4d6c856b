package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

const auditColumns = `id::text, action, severity, kind, actor, ip_address, user_agent,
	batch_id, source, file_name, total_rows, success_rows, error_rows, reason, created_at`

// toPgText maps "" to NULL.
func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func (s *Store) InsertAudit(ctx context.Context, e core.AuditEntry) (core.AuditEntry, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO audit_log (action, severity, kind, actor, ip_address, user_agent,
			batch_id, source, file_name, total_rows, success_rows, error_rows, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id::text, created_at`,
		string(e.Action), string(e.Severity), toPgText(string(e.Kind)), e.Actor,
		toPgText(e.IPAddress), toPgText(e.UserAgent), toPgText(e.BatchID),
		toPgText(e.Source), toPgText(e.FileName),
		e.TotalRows, e.SuccessRows, e.ErrorRows, toPgText(e.Reason),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return core.AuditEntry{}, mapError(err)
	}
	return e, nil
}

func (s *Store) ListAudit(ctx context.Context, f core.AuditFilter) ([]core.AuditEntry, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.Action != "" {
		add("action = $%d", string(f.Action))
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.Actor != "" {
		add("actor = $%d", f.Actor)
	}
	if f.StartDate != nil {
		add("created_at >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("created_at < $%d", core.DayAfter(*f.EndDate))
	}

	query := "SELECT " + auditColumns + " FROM audit_log"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]core.AuditEntry, 0)
	for rows.Next() {
		e, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) PurgeAudit(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM audit_log WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

// scanAuditRow scans a single row from audit_log into an AuditEntry.
func scanAuditRow(rows pgx.Rows) (core.AuditEntry, error) {
	var (
		e                                           core.AuditEntry
		action, severity                            string
		kind, ip, ua, batchID, source, file, reason pgtype.Text
	)
	err := rows.Scan(
		&e.ID, &action, &severity, &kind, &e.Actor, &ip, &ua,
		&batchID, &source, &file, &e.TotalRows, &e.SuccessRows, &e.ErrorRows, &reason, &e.CreatedAt,
	)
	if err != nil {
		return core.AuditEntry{}, err
	}

	e.Action = core.AuditAction(action)
	e.Severity = core.AuditSeverity(severity)
	e.Kind = core.Kind(kind.String)
	e.IPAddress = ip.String
	e.UserAgent = ua.String
	e.BatchID = batchID.String
	e.Source = source.String
	e.FileName = file.String
	e.Reason = reason.String
	return e, nil
}
