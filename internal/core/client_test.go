package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestResolver(store ClientStore) *ClientResolver {
	r := NewClientResolver(store)
	r.now = func() time.Time { return time.Unix(0, 1700000000000000000) }
	return r
}

func TestClientResolver_CreatesClient(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	got, err := r.Resolve(context.Background(), ClientInput{
		Name:       " سالم ",
		NationalID: "123",
		Phone:      "0501234567",
	}, "alice")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got.ID == "" {
		t.Error("created client has no ID")
	}
	if got.Name != "سالم" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.NationalID != "0000000123" {
		t.Errorf("NationalID = %q, want padded", got.NationalID)
	}
	if got.Village != DefaultVillage {
		t.Errorf("Village = %q, want %q", got.Village, DefaultVillage)
	}
	if got.Status != DefaultClientStatus {
		t.Errorf("Status = %q, want %q", got.Status, DefaultClientStatus)
	}
	if got.CreatedBy != "alice" {
		t.Errorf("CreatedBy = %q", got.CreatedBy)
	}
}

func TestClientResolver_TempNationalID(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	got, err := r.Resolve(context.Background(), ClientInput{Name: "Omar"}, "alice")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasPrefix(got.NationalID, "TEMP-1700000000000000000-") {
		t.Errorf("NationalID = %q", got.NationalID)
	}
	if !IsTempNationalID(got.NationalID) {
		t.Errorf("IsTempNationalID(%q) = false", got.NationalID)
	}

	// Same clock reading, different client.
	other, err := r.Resolve(context.Background(), ClientInput{Name: "Sara"}, "alice")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if other.NationalID == got.NationalID {
		t.Errorf("placeholder reused: %q", other.NationalID)
	}
	if other.ID == got.ID {
		t.Error("second client linked to the first")
	}
}

func TestClientResolver_TempConflictNotLinked(t *testing.T) {
	store := newFakeStore()
	store.clients = []ClientRef{{ID: "someone", Name: "Someone", NationalID: "TEMP-1"}}
	store.createErr = func(ClientRef) error { return ErrDuplicate }
	r := newTestResolver(store)

	_, err := r.Resolve(context.Background(), ClientInput{Name: "Omar"}, "alice")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestTempNationalID(t *testing.T) {
	now := time.Unix(0, 42)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := TempNationalID(now)
		if seen[id] {
			t.Fatalf("duplicate placeholder %q", id)
		}
		seen[id] = true
		if len(id) > 50 {
			t.Errorf("placeholder %q longer than the national ID column", id)
		}
	}
	if IsTempNationalID("1028544243") {
		t.Error("real national ID reported as placeholder")
	}
}

func TestClientResolver_LookupOrder(t *testing.T) {
	store := newFakeStore()
	store.clients = []ClientRef{
		{ID: "by-name", Name: "Omar", NationalID: "1111111111"},
		{ID: "by-phone", Name: "Other", NationalID: "2222222222", Phone: "0500000000"},
		{ID: "by-id", Name: "Third", NationalID: "0000000123"},
	}
	r := newTestResolver(store)

	tests := []struct {
		name   string
		input  ClientInput
		wantID string
	}{
		{"national id wins", ClientInput{Name: "Omar", NationalID: "123", Phone: "0500000000"}, "by-id"},
		{"padded lookup", ClientInput{NationalID: "123"}, "by-id"},
		{"arabic digits", ClientInput{NationalID: "١٢٣"}, "by-id"},
		{"phone before name", ClientInput{Name: "Omar", Phone: "0500000000"}, "by-phone"},
		{"unmatched id falls to name", ClientInput{Name: "Omar", NationalID: "999"}, "by-name"},
		{"name only", ClientInput{Name: "Omar"}, "by-name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.input, "alice")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("resolved %q, want %q", got.ID, tt.wantID)
			}
		})
	}

	if len(store.clients) != 3 {
		t.Errorf("lookups created clients: %d", len(store.clients))
	}
}

func TestClientResolver_IdentityErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     ClientInput
		wantField string
	}{
		{"nothing", ClientInput{}, "client"},
		{"village only", ClientInput{Village: "الخرج"}, "client"},
		{"unknown id without name", ClientInput{NationalID: "42"}, "client.name"},
		{"unknown phone without name", ClientInput{Phone: "0559999999"}, "client.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(newFakeStore())
			_, err := r.Resolve(context.Background(), tt.input, "alice")
			if !errors.Is(err, ErrClientIdentityMissing) {
				t.Fatalf("error = %v, want ErrClientIdentityMissing", err)
			}
			if got := errorField(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

// racingStore reports no match on lookup until a create conflicts, the way
// a concurrent insert from a sibling row looks.
type racingStore struct {
	*fakeStore
	winner  ClientRef
	created bool
}

func (s *racingStore) FindClientByNationalID(ctx context.Context, id string) (ClientRef, error) {
	if !s.created {
		return ClientRef{}, ErrNotFound
	}
	return s.winner, nil
}

func (s *racingStore) CreateClient(_ context.Context, _ ClientRef) (ClientRef, error) {
	s.created = true
	return ClientRef{}, ErrDuplicate
}

func TestClientResolver_ConflictRereads(t *testing.T) {
	store := &racingStore{
		fakeStore: newFakeStore(),
		winner:    ClientRef{ID: "winner", Name: "سالم", NationalID: "1234567890"},
	}
	r := newTestResolver(store)

	got, err := r.Resolve(context.Background(), ClientInput{Name: "سالم", NationalID: "1234567890"}, "alice")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "winner" {
		t.Errorf("resolved %q, want winner", got.ID)
	}
}

type failingClientStore struct {
	*fakeStore
}

func (s failingClientStore) FindClientByNationalID(context.Context, string) (ClientRef, error) {
	return ClientRef{}, errors.New("connection refused")
}

func TestClientResolver_StoreFailure(t *testing.T) {
	r := newTestResolver(failingClientStore{newFakeStore()})

	_, err := r.Resolve(context.Background(), ClientInput{Name: "x", NationalID: "1"}, "alice")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "find client") {
		t.Errorf("error = %v", err)
	}
	if got := MapError(err).Code; got != "DB004" {
		t.Errorf("code = %s, want DB004", got)
	}
}

func TestClientResolver_ConcurrentRowsShareClient(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)
	engine := NewEngine(5)

	rows := make([]RawRow, 10)
	for i := range rows {
		rows[i] = RawRow{"Name": "سالم", "ID": "1234567890"}
	}

	res, err := engine.Run(context.Background(), Batch{Kind: testKind, Source: SourceUpload, Actor: "alice", Rows: rows},
		func(ctx context.Context, _ int, row RawRow) (ImportedRecord, error) {
			c, err := r.Resolve(ctx, ClientInputFromRow(row), "alice")
			return ImportedRecord{ID: c.ID}, err
		})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ErrorRows != 0 {
		t.Fatalf("errors: %+v", res.Errors)
	}

	first := res.Imported[0].ID
	for _, rec := range res.Imported {
		if rec.ID != first {
			t.Errorf("row %d resolved client %q, want %q", rec.Row, rec.ID, first)
		}
	}
	if len(store.clients) != 1 {
		t.Errorf("stored %d clients, want 1", len(store.clients))
	}
}
