package pending

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ton-connect/kit-sub008/models"
	"github.com/ton-connect/kit-sub008/storage"
)

const (
	KeyPrefix  = "pending:"
	DefaultTTL = 300 * time.Second
)

// Manager owns the created -> {confirmed | cancelled | expired} lifecycle
// of draft transactions. All states after created are terminal. Storage
// TTL is a backstop; expiry is also checked lazily on every read.
type Manager struct {
	store storage.Storage
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store storage.Storage, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

type CreateRequest struct {
	Type        models.PendingTxType       `json:"type" example:"send_ton"`
	WalletName  string                     `json:"wallet_name" example:"main"`
	Description string                     `json:"description"`
	Ton         *models.TonTransferData    `json:"ton,omitempty"`
	Jetton      *models.JettonTransferData `json:"jetton,omitempty"`
	Swap        *models.SwapData           `json:"swap,omitempty"`
} // @name CreateRequest

var reDigits = regexp.MustCompile(`^[0-9]+$`)

// Validate checks the request carries a known type, a wallet name and
// exactly the data variant matching the type, with integer nano amounts.
func (req CreateRequest) Validate() error {
	if req.WalletName == "" {
		return fmt.Errorf("wallet_name is required")
	}
	variants := 0
	for _, set := range []bool{req.Ton != nil, req.Jetton != nil, req.Swap != nil} {
		if set {
			variants++
		}
	}
	if variants != 1 {
		return fmt.Errorf("exactly one of ton, jetton, swap must be set")
	}
	switch req.Type {
	case models.PendingSendTon:
		if req.Ton == nil {
			return fmt.Errorf("type %s requires ton data", req.Type)
		}
		if req.Ton.Destination == "" {
			return fmt.Errorf("ton destination is required")
		}
		if !reDigits.MatchString(req.Ton.Amount) {
			return fmt.Errorf("ton amount must be a valid number")
		}
	case models.PendingSendJetton:
		if req.Jetton == nil {
			return fmt.Errorf("type %s requires jetton data", req.Type)
		}
		if req.Jetton.JettonMaster == "" || req.Jetton.Destination == "" {
			return fmt.Errorf("jetton master and destination are required")
		}
		if !reDigits.MatchString(req.Jetton.Amount) {
			return fmt.Errorf("jetton amount must be a valid number")
		}
	case models.PendingSwap:
		if req.Swap == nil {
			return fmt.Errorf("type %s requires swap data", req.Type)
		}
		if req.Swap.FromToken == "" || req.Swap.ToToken == "" {
			return fmt.Errorf("swap tokens are required")
		}
		if !reDigits.MatchString(req.Swap.Amount) {
			return fmt.Errorf("swap amount must be a valid number")
		}
	default:
		return fmt.Errorf("unknown pending transaction type %q", req.Type)
	}
	return nil
}

func generateID(now time.Time) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 10)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("tx_%d_%s", now.UnixMilli(), string(b))
}

// Create writes a new time-boxed draft and returns it.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*models.PendingTransaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := m.now()
	rec := &models.PendingTransaction{
		ID:          generateID(now),
		Type:        req.Type,
		WalletName:  req.WalletName,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
		Description: req.Description,
		Ton:         req.Ton,
		Jetton:      req.Jetton,
		Swap:        req.Swap,
	}
	data, err := storage.Encode(rec)
	if err != nil {
		return nil, err
	}
	if err := m.store.Set(ctx, KeyPrefix+rec.ID, data, m.ttl); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the draft or nil when it is absent or expired. An expired
// record found before storage evicted it is deleted on the spot.
func (m *Manager) Get(ctx context.Context, id string) (*models.PendingTransaction, error) {
	data, err := m.store.Get(ctx, KeyPrefix+id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec, err := storage.Decode[models.PendingTransaction](data)
	if err != nil {
		return nil, err
	}
	if !m.now().Before(rec.ExpiresAt) {
		if _, err := m.store.Delete(ctx, KeyPrefix+id); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &rec, nil
}

// List returns the caller's live drafts, newest first.
func (m *Manager) List(ctx context.Context) ([]*models.PendingTransaction, error) {
	keys, err := m.store.List(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	recs := make([]*models.PendingTransaction, 0, len(keys))
	for _, key := range keys {
		rec, err := m.Get(ctx, strings.TrimPrefix(key, KeyPrefix))
		if err != nil {
			return nil, err
		}
		if rec != nil {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

// Confirm consumes the draft and returns it so the caller can proceed to
// sign and broadcast. Consume-once: the atomic read-and-delete guarantees
// at most one of any concurrent confirms observes the record; any later
// confirm returns nil.
func (m *Manager) Confirm(ctx context.Context, id string) (*models.PendingTransaction, error) {
	data, err := m.store.GetDel(ctx, KeyPrefix+id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec, err := storage.Decode[models.PendingTransaction](data)
	if err != nil {
		return nil, err
	}
	if !m.now().Before(rec.ExpiresAt) {
		return nil, nil
	}
	return &rec, nil
}

// Cancel discards the draft. True when a live draft was removed.
func (m *Manager) Cancel(ctx context.Context, id string) (bool, error) {
	rec, err := m.Confirm(ctx, id)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}
