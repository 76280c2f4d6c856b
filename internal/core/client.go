package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// TempNationalIDPrefix marks the placeholder national ID of a client
// created without one.
const TempNationalIDPrefix = "TEMP-"

// TempNationalID returns a placeholder national ID. The random token keeps
// two clients created in the same nanosecond apart.
func TempNationalID(now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return TempNationalIDPrefix + strconv.FormatInt(now.UnixNano(), 10) + "-" + token
}

// IsTempNationalID reports whether id was produced by TempNationalID.
func IsTempNationalID(id string) bool {
	return strings.HasPrefix(id, TempNationalIDPrefix)
}

// ClientResolver finds or creates the client a row refers to.
type ClientResolver struct {
	store ClientStore
	now   func() time.Time
}

// NewClientResolver returns a resolver backed by store.
func NewClientResolver(store ClientStore) *ClientResolver {
	return &ClientResolver{store: store, now: time.Now}
}

// Resolve looks the client up by national ID, then phone, then name, and
// creates one when none match. A row that carries neither a name nor any
// identity field fails with ErrClientIdentityMissing.
func (r *ClientResolver) Resolve(ctx context.Context, in ClientInput, actor string) (ClientRef, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.NationalID = strings.TrimSpace(normalizeDigits(in.NationalID))
	in.Phone = strings.TrimSpace(normalizeDigits(in.Phone))
	in.Village = strings.TrimSpace(in.Village)

	if in.Name == "" && in.NationalID == "" && in.Phone == "" {
		return ClientRef{}, NewFieldError("client", "", ErrClientIdentityMissing)
	}

	if c, ok, err := r.find(ctx, in); err != nil || ok {
		return c, err
	}

	if in.Name == "" {
		// New clients need a name.
		return ClientRef{}, NewFieldError("client.name", "", ErrClientIdentityMissing)
	}

	nationalID := in.NationalID
	if nationalID == "" {
		nationalID = TempNationalID(r.now())
	} else {
		nationalID = PadNationalID(nationalID)
	}
	village := in.Village
	if village == "" {
		village = DefaultVillage
	}

	created, err := r.store.CreateClient(ctx, ClientRef{
		Name:       in.Name,
		NationalID: nationalID,
		Phone:      in.Phone,
		Village:    village,
		Status:     DefaultClientStatus,
		CreatedBy:  actor,
	})
	if errors.Is(err, ErrDuplicate) && !IsTempNationalID(nationalID) {
		// Another row created the same client between our lookup and insert.
		existing, findErr := r.store.FindClientByNationalID(ctx, nationalID)
		if findErr != nil {
			return ClientRef{}, fmt.Errorf("re-read client after conflict: %w", findErr)
		}
		return existing, nil
	}
	if err != nil {
		return ClientRef{}, fmt.Errorf("create client: %w", err)
	}

	logging.FromContext(ctx).Debug("client created",
		"client_id", created.ID,
		"national_id", created.NationalID,
	)
	return created, nil
}

// find runs the three lookups in priority order. Padded and unpadded
// national IDs are both tried so "123" finds "0000000123".
func (r *ClientResolver) find(ctx context.Context, in ClientInput) (ClientRef, bool, error) {
	type lookup struct {
		key  string
		find func(context.Context, string) (ClientRef, error)
	}

	var lookups []lookup
	if in.NationalID != "" {
		lookups = append(lookups, lookup{in.NationalID, r.store.FindClientByNationalID})
		if padded := PadNationalID(in.NationalID); padded != in.NationalID {
			lookups = append(lookups, lookup{padded, r.store.FindClientByNationalID})
		}
	}
	if in.Phone != "" {
		lookups = append(lookups, lookup{in.Phone, r.store.FindClientByPhone})
	}
	if in.Name != "" {
		lookups = append(lookups, lookup{in.Name, r.store.FindClientByName})
	}

	for _, l := range lookups {
		c, err := l.find(ctx, l.key)
		if err == nil {
			return c, true, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return ClientRef{}, false, fmt.Errorf("find client: %w", err)
		}
	}
	return ClientRef{}, false, nil
}
