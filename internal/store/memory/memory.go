// Package memory is an in-process core.Store for development and tests.
// It enforces the same uniqueness rules as the PostgreSQL store: one client
// per national ID, one record per serial within a kind, one holding code
// per village.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// Store keeps everything in maps guarded by one mutex.
type Store struct {
	mu      sync.RWMutex
	clients []core.ClientRef
	records map[core.Kind][]core.Record
	serials map[core.Kind]map[string]struct{}
	holding []core.HoldingCode
	audit   []core.AuditEntry

	now func() time.Time
}

var _ core.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		records: make(map[core.Kind][]core.Record),
		serials: make(map[core.Kind]map[string]struct{}),
		now:     time.Now,
	}
}

// ----------------------------------------------------------------------------
// Clients
// ----------------------------------------------------------------------------

func (s *Store) findClient(match func(core.ClientRef) bool) (core.ClientRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if match(c) {
			return c, nil
		}
	}
	return core.ClientRef{}, core.ErrNotFound
}

func (s *Store) FindClientByNationalID(_ context.Context, nationalID string) (core.ClientRef, error) {
	return s.findClient(func(c core.ClientRef) bool { return c.NationalID == nationalID })
}

func (s *Store) FindClientByPhone(_ context.Context, phone string) (core.ClientRef, error) {
	return s.findClient(func(c core.ClientRef) bool { return c.Phone != "" && c.Phone == phone })
}

func (s *Store) FindClientByName(_ context.Context, name string) (core.ClientRef, error) {
	return s.findClient(func(c core.ClientRef) bool { return c.Name == name })
}

func (s *Store) CreateClient(_ context.Context, c core.ClientRef) (core.ClientRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.NationalID == c.NationalID {
			return core.ClientRef{}, core.ErrDuplicate
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.now()
	s.clients = append(s.clients, c)
	return c, nil
}

func (s *Store) ListClients(_ context.Context, f core.ClientFilter) ([]core.ClientRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.ClientRef, 0, len(s.clients))
	for i := len(s.clients) - 1; i >= 0; i-- {
		c := s.clients[i]
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Records
// ----------------------------------------------------------------------------

func (s *Store) SerialExists(_ context.Context, kind core.Kind, serial string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.serials[kind][serial]
	return ok, nil
}

func (s *Store) SaveRecord(_ context.Context, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := rec.Kind()
	set, ok := s.serials[kind]
	if !ok {
		set = make(map[string]struct{})
		s.serials[kind] = set
	}
	if _, taken := set[rec.Serial()]; taken {
		return core.ErrDuplicate
	}
	set[rec.Serial()] = struct{}{}

	base := rec.Base()
	base.ID = uuid.NewString()
	base.CreatedAt = s.now()
	s.records[kind] = append(s.records[kind], rec)
	return nil
}

func (s *Store) ListRecords(_ context.Context, kind core.Kind, f core.ExportFilter, _ func() core.Record) ([]core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Record, 0)
	for _, rec := range s.records[kind] {
		date := rec.Base().Date
		if f.StartDate != nil && date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && !date.Before(core.DayAfter(*f.EndDate)) {
			continue
		}
		if f.InterventionCategory != "" {
			if v, _ := rec.Values()["interventionCategory"].(string); !strings.EqualFold(v, f.InterventionCategory) {
				continue
			}
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b core.Record) int {
		return b.Base().Date.Compare(a.Base().Date)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Records returns a snapshot of the stored records of kind, oldest first.
func (s *Store) Records(kind core.Kind) []core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records[kind])
}

// Clients returns a snapshot of the stored clients, oldest first.
func (s *Store) Clients() []core.ClientRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients)
}

// ----------------------------------------------------------------------------
// Holding codes
// ----------------------------------------------------------------------------

func (s *Store) ListHoldingCodes(_ context.Context, f core.HoldingCodeFilter) ([]core.HoldingCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.HoldingCode, 0, len(s.holding))
	for _, hc := range s.holding {
		if f.Village != "" && hc.Village != f.Village {
			continue
		}
		if f.Active != nil && hc.IsActive != *f.Active {
			continue
		}
		out = append(out, hc)
	}
	slices.SortFunc(out, func(a, b core.HoldingCode) int {
		return strings.Compare(a.Village, b.Village)
	})
	return out, nil
}

func (s *Store) GetHoldingCode(_ context.Context, id string) (core.HoldingCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.holdingIndex(id); i >= 0 {
		return s.holding[i], nil
	}
	return core.HoldingCode{}, core.ErrNotFound
}

func (s *Store) CreateHoldingCode(_ context.Context, hc core.HoldingCode) (core.HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.villageTaken(hc.Village, "") {
		return core.HoldingCode{}, core.ErrDuplicate
	}
	hc.ID = uuid.NewString()
	hc.CreatedAt = s.now()
	hc.UpdatedAt = hc.CreatedAt
	s.holding = append(s.holding, hc)
	return hc, nil
}

func (s *Store) UpdateHoldingCode(_ context.Context, hc core.HoldingCode) (core.HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.holdingIndex(hc.ID)
	if i < 0 {
		return core.HoldingCode{}, core.ErrNotFound
	}
	if s.villageTaken(hc.Village, hc.ID) {
		return core.HoldingCode{}, core.ErrDuplicate
	}
	hc.CreatedAt = s.holding[i].CreatedAt
	hc.UpdatedAt = s.now()
	s.holding[i] = hc
	return hc, nil
}

func (s *Store) DeleteHoldingCode(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.holdingIndex(id)
	if i < 0 {
		return core.ErrNotFound
	}
	s.holding = slices.Delete(s.holding, i, i+1)
	return nil
}

func (s *Store) holdingIndex(id string) int {
	return slices.IndexFunc(s.holding, func(hc core.HoldingCode) bool { return hc.ID == id })
}

func (s *Store) villageTaken(village, exceptID string) bool {
	return slices.ContainsFunc(s.holding, func(hc core.HoldingCode) bool {
		return hc.Village == village && hc.ID != exceptID
	})
}

// ----------------------------------------------------------------------------
// Audit
// ----------------------------------------------------------------------------

func (s *Store) InsertAudit(_ context.Context, e core.AuditEntry) (core.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = s.now()
	s.audit = append(s.audit, e)
	return e, nil
}

func (s *Store) ListAudit(_ context.Context, f core.AuditFilter) ([]core.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.AuditEntry, 0)
	skipped := 0
	for i := len(s.audit) - 1; i >= 0; i-- {
		e := s.audit[i]
		switch {
		case f.Action != "" && e.Action != f.Action,
			f.Kind != "" && e.Kind != f.Kind,
			f.Actor != "" && e.Actor != f.Actor,
			f.StartDate != nil && e.CreatedAt.Before(*f.StartDate),
			f.EndDate != nil && !e.CreatedAt.Before(core.DayAfter(*f.EndDate)):
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) PurgeAudit(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.audit)
	s.audit = slices.DeleteFunc(s.audit, func(e core.AuditEntry) bool {
		return e.CreatedAt.Before(cutoff)
	})
	return int64(before - len(s.audit)), nil
}
