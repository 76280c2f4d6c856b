package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// serialPrefixes holds the generated-serial prefix per kind.
var serialPrefixes = map[Kind]string{
	KindVaccination:     "VAC",
	KindParasiteControl: "PAR",
	KindMobileClinic:    "MC",
	KindEquineHealth:    "EH",
	KindLaboratory:      "LAB",
}

// SerialPrefix returns the prefix used for generated serials of kind.
func SerialPrefix(kind Kind) string {
	if p, ok := serialPrefixes[kind]; ok {
		return p
	}
	return strings.ToUpper(string(kind))
}

// SerialAllocator hands out human-facing serials that are unique within
// one batch and, best-effort, within the kind's collection.
//
// An explicit serial is kept when free. Taken serials escalate twice:
// first with the last six digits of the millisecond clock, then with a
// random three-digit suffix. The storage unique index is the final word;
// callers retry a save once on ErrDuplicate.
//
// A SerialAllocator is scoped to one batch and safe for concurrent use.
type SerialAllocator struct {
	store RecordStore
	now   func() time.Time
	randn func(n int) int

	mu       sync.Mutex
	reserved map[Kind]map[string]struct{}
}

// NewSerialAllocator returns an allocator that checks store for taken serials.
func NewSerialAllocator(store RecordStore) *SerialAllocator {
	return &SerialAllocator{
		store:    store,
		now:      time.Now,
		randn:    rand.IntN,
		reserved: make(map[Kind]map[string]struct{}),
	}
}

// Allocate returns a serial for a new record of kind. raw is the serial
// supplied by the row, if any. Allocate never fails.
func (a *SerialAllocator) Allocate(ctx context.Context, kind Kind, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return a.generate(ctx, kind)
	}

	if a.claim(ctx, kind, raw) {
		return raw
	}

	ms := strconv.FormatInt(a.now().UnixMilli(), 10)
	candidate := raw + "-" + ms[max(0, len(ms)-6):]
	if a.claim(ctx, kind, candidate) {
		logging.FromContext(ctx).Debug("serial escalated", "kind", kind, "serial", raw, "allocated", candidate)
		return candidate
	}

	base := candidate
	for range 10 {
		candidate = fmt.Sprintf("%s-%03d", base, a.randn(1000))
		if a.reserve(kind, candidate) {
			break
		}
	}
	logging.FromContext(ctx).Debug("serial escalated", "kind", kind, "serial", raw, "allocated", candidate)
	return candidate
}

// generate builds {PREFIX}-{unix ms}-{token}.
func (a *SerialAllocator) generate(ctx context.Context, kind Kind) string {
	var serial string
	for range 3 {
		token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
		serial = fmt.Sprintf("%s-%d-%s", SerialPrefix(kind), a.now().UnixMilli(), token)
		if a.claim(ctx, kind, serial) {
			break
		}
	}
	return serial
}

// claim reserves candidate for this batch and reports whether it is free.
// A failed store lookup counts as free; the unique index still guards the save.
func (a *SerialAllocator) claim(ctx context.Context, kind Kind, candidate string) bool {
	if !a.reserve(kind, candidate) {
		return false
	}

	exists, err := a.store.SerialExists(ctx, kind, candidate)
	if err != nil {
		logging.FromContext(ctx).Warn("serial lookup failed",
			"kind", kind,
			"serial", candidate,
			"error", err,
		)
		return true
	}
	return !exists
}

// reserve records candidate as handed out, returning false if it already was.
func (a *SerialAllocator) reserve(kind Kind, candidate string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	set, ok := a.reserved[kind]
	if !ok {
		set = make(map[string]struct{})
		a.reserved[kind] = set
	}
	if _, taken := set[candidate]; taken {
		return false
	}
	set[candidate] = struct{}{}
	return true
}
