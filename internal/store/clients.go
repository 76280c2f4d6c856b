package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

const clientColumns = `id::text, name, national_id, phone, email, village,
	detailed_address, status, created_by, created_at`

func scanClient(row pgx.Row) (core.ClientRef, error) {
	var c core.ClientRef
	err := row.Scan(
		&c.ID, &c.Name, &c.NationalID, &c.Phone, &c.Email, &c.Village,
		&c.DetailedAddress, &c.Status, &c.CreatedBy, &c.CreatedAt,
	)
	return c, err
}

func (s *Store) findClient(ctx context.Context, column, value string) (core.ClientRef, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM clients WHERE %s = $1 ORDER BY created_at LIMIT 1",
		clientColumns, column,
	)
	c, err := scanClient(s.db.QueryRow(ctx, query, value))
	return c, mapError(err)
}

func (s *Store) FindClientByNationalID(ctx context.Context, nationalID string) (core.ClientRef, error) {
	return s.findClient(ctx, "national_id", nationalID)
}

func (s *Store) FindClientByPhone(ctx context.Context, phone string) (core.ClientRef, error) {
	return s.findClient(ctx, "phone", phone)
}

func (s *Store) FindClientByName(ctx context.Context, name string) (core.ClientRef, error) {
	return s.findClient(ctx, "name", name)
}

// CreateClient inserts c. A national ID that is already taken returns
// core.ErrDuplicate without raising a constraint error, so concurrent rows
// for the same new client converge on the first insert.
func (s *Store) CreateClient(ctx context.Context, c core.ClientRef) (core.ClientRef, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO clients (name, national_id, phone, email, village, detailed_address, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (national_id) DO NOTHING
		RETURNING id::text, created_at`,
		c.Name, c.NationalID, c.Phone, c.Email, c.Village, c.DetailedAddress, c.Status, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.ClientRef{}, fmt.Errorf("%w: national id %s", core.ErrDuplicate, c.NationalID)
	}
	if err != nil {
		return core.ClientRef{}, mapError(err)
	}
	return c, nil
}

func (s *Store) ListClients(ctx context.Context, f core.ClientFilter) ([]core.ClientRef, error) {
	query := "SELECT " + clientColumns + " FROM clients"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	clients := make([]core.ClientRef, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
