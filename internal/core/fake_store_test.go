package core

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// fakeStore is an in-memory Store for package tests. Failure hooks let
// tests force storage errors.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int
	clients []ClientRef
	records map[Kind][]Record
	serials map[Kind]map[string]bool
	codes   []HoldingCode
	audits  []AuditEntry

	createErr func(c ClientRef) error
	saveErr   func(rec Record) error
	existsErr error
	auditErr  error
	purged    []time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[Kind][]Record),
		serials: make(map[Kind]map[string]bool),
	}
}

func (s *fakeStore) id() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}

func (s *fakeStore) find(match func(ClientRef) bool) (ClientRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if match(c) {
			return c, nil
		}
	}
	return ClientRef{}, ErrNotFound
}

func (s *fakeStore) FindClientByNationalID(_ context.Context, id string) (ClientRef, error) {
	return s.find(func(c ClientRef) bool { return c.NationalID == id })
}

func (s *fakeStore) FindClientByPhone(_ context.Context, phone string) (ClientRef, error) {
	return s.find(func(c ClientRef) bool { return c.Phone != "" && c.Phone == phone })
}

func (s *fakeStore) FindClientByName(_ context.Context, name string) (ClientRef, error) {
	return s.find(func(c ClientRef) bool { return c.Name == name })
}

func (s *fakeStore) CreateClient(_ context.Context, c ClientRef) (ClientRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		if err := s.createErr(c); err != nil {
			return ClientRef{}, err
		}
	}
	for _, existing := range s.clients {
		if existing.NationalID == c.NationalID {
			return ClientRef{}, ErrDuplicate
		}
	}
	c.ID = s.id()
	s.clients = append(s.clients, c)
	return c, nil
}

func (s *fakeStore) ListClients(_ context.Context, f ClientFilter) ([]ClientRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []ClientRef{}
	for _, c := range s.clients {
		if f.Status == "" || c.Status == f.Status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) SerialExists(_ context.Context, kind Kind, serial string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serials[kind][serial], nil
}

func (s *fakeStore) SaveRecord(_ context.Context, rec Record) error {
	if s.saveErr != nil {
		if err := s.saveErr(rec); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.serials[rec.Kind()]
	if set == nil {
		set = make(map[string]bool)
		s.serials[rec.Kind()] = set
	}
	if set[rec.Serial()] {
		return ErrDuplicate
	}
	set[rec.Serial()] = true
	rec.Base().ID = s.id()
	s.records[rec.Kind()] = append(s.records[rec.Kind()], rec)
	return nil
}

func (s *fakeStore) ListRecords(_ context.Context, kind Kind, f ExportFilter, _ func() Record) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Record{}
	for _, rec := range s.records[kind] {
		out = append(out, rec)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) ListHoldingCodes(_ context.Context, f HoldingCodeFilter) ([]HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []HoldingCode{}
	for _, hc := range s.codes {
		if f.Village != "" && hc.Village != f.Village {
			continue
		}
		if f.Active != nil && hc.IsActive != *f.Active {
			continue
		}
		out = append(out, hc)
	}
	return out, nil
}

func (s *fakeStore) GetHoldingCode(_ context.Context, id string) (HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, hc := range s.codes {
		if hc.ID == id {
			return hc, nil
		}
	}
	return HoldingCode{}, ErrNotFound
}

func (s *fakeStore) CreateHoldingCode(_ context.Context, hc HoldingCode) (HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.codes {
		if existing.Village == hc.Village {
			return HoldingCode{}, ErrDuplicate
		}
	}
	hc.ID = s.id()
	s.codes = append(s.codes, hc)
	return hc, nil
}

func (s *fakeStore) UpdateHoldingCode(_ context.Context, hc HoldingCode) (HoldingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.codes {
		if existing.ID == hc.ID {
			s.codes[i] = hc
			return hc, nil
		}
	}
	return HoldingCode{}, ErrNotFound
}

func (s *fakeStore) DeleteHoldingCode(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.codes {
		if existing.ID == id {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *fakeStore) InsertAudit(_ context.Context, e AuditEntry) (AuditEntry, error) {
	if s.auditErr != nil {
		return AuditEntry{}, s.auditErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.audits = append(s.audits, e)
	return e, nil
}

func (s *fakeStore) ListAudit(_ context.Context, f AuditFilter) ([]AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []AuditEntry{}
	for i := len(s.audits) - 1; i >= 0; i-- {
		e := s.audits[i]
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		out = append(out, e)
	}
	if f.Offset > 0 {
		out = out[min(f.Offset, len(out)):]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *fakeStore) PurgeAudit(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purged = append(s.purged, cutoff)
	return int64(len(s.audits)), nil
}

func (s *fakeStore) auditEntries() []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AuditEntry(nil), s.audits...)
}

// testRecord is a minimal Record used by engine and persistence tests.
type testRecord struct {
	RecordBase
	SerialNo string `json:"serialNo"`
	Count    int    `json:"count"`
}

const testKind Kind = "test-kind"

func (r *testRecord) Kind() Kind { return testKind }
func (r *testRecord) Serial() string { return r.SerialNo }
func (r *testRecord) SetSerial(s string) { r.SerialNo = s }
func (r *testRecord) Validate() error { return validateSerial("serialNo", r.SerialNo) }
func (r *testRecord) Values() map[string]any {
	m := map[string]any{"serialNo": r.SerialNo, "count": r.Count}
	r.RecordBase.putValues(m)
	return m
}
