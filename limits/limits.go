package limits

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ton-connect/kit-sub008/models"
	"github.com/ton-connect/kit-sub008/storage"
)

const (
	NanoPerTon = 1_000_000_000

	UsageKeyPrefix = "usage:"
	// A day plus slack, so the counter outlives its calendar day and then
	// self-evicts.
	UsageTTL = 90000 * time.Second
)

// Config holds the spend and wallet caps. Zero disables a cap.
type Config struct {
	MaxTxAmountTon    float64
	MaxDailyAmountTon float64
	MaxWalletsPerUser int
}

// Result is the outcome of a limit check. Exceeding a cap is an expected,
// recoverable condition and is reported, not raised.
type Result struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
} // @name LimitResult

type Manager struct {
	cfg Config
	now func() time.Time
}

func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// toNano converts a TON amount to integer nanotons. All limit arithmetic
// stays in integers; floats appear only at the report boundary.
func toNano(amountTon float64) int64 {
	return int64(math.Round(amountTon * NanoPerTon))
}

func formatTon(nano int64) string {
	return strconv.FormatFloat(float64(nano)/NanoPerTon, 'f', -1, 64)
}

func (m *Manager) today() string {
	return m.now().UTC().Format("2006-01-02")
}

func (m *Manager) readUsage(ctx context.Context, store storage.Storage) (models.DailyUsage, error) {
	date := m.today()
	data, err := store.Get(ctx, UsageKeyPrefix+date)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DailyUsage{Date: date}, nil
	}
	if err != nil {
		return models.DailyUsage{}, err
	}
	usage, err := storage.Decode[models.DailyUsage](data)
	if err != nil {
		return models.DailyUsage{}, err
	}
	if usage.Date != date {
		return models.DailyUsage{Date: date}, nil
	}
	return usage, nil
}

// CheckTransactionLimit checks the amount against the per-transaction cap
// and against the day's remaining allowance.
func (m *Manager) CheckTransactionLimit(ctx context.Context, store storage.Storage, amountTon float64) (Result, error) {
	amount := toNano(amountTon)
	if m.cfg.MaxTxAmountTon > 0 && amount > toNano(m.cfg.MaxTxAmountTon) {
		return Result{Reason: fmt.Sprintf(
			"amount %s TON exceeds per-transaction limit of %s TON",
			formatTon(amount), formatTon(toNano(m.cfg.MaxTxAmountTon)))}, nil
	}
	if m.cfg.MaxDailyAmountTon > 0 {
		usage, err := m.readUsage(ctx, store)
		if err != nil {
			return Result{}, err
		}
		dailyCap := toNano(m.cfg.MaxDailyAmountTon)
		if usage.TotalSpentNano+amount > dailyCap {
			remaining := dailyCap - usage.TotalSpentNano
			if remaining < 0 {
				remaining = 0
			}
			return Result{Reason: fmt.Sprintf(
				"daily limit exceeded: %s TON remaining of %s TON",
				formatTon(remaining), formatTon(dailyCap))}, nil
		}
	}
	return Result{Allowed: true}, nil
}

// RecordTransaction adds the amount to today's running total. The
// read-modify-write is not atomic: concurrent records for the same user on
// the same day can race. Strict accuracy would need a storage-side atomic
// add or per-user serialization.
func (m *Manager) RecordTransaction(ctx context.Context, store storage.Storage, amountTon float64) error {
	usage, err := m.readUsage(ctx, store)
	if err != nil {
		return err
	}
	usage.TotalSpentNano += toNano(amountTon)
	data, err := storage.Encode(usage)
	if err != nil {
		return err
	}
	return store.Set(ctx, UsageKeyPrefix+usage.Date, data, UsageTTL)
}

// CheckWalletCountLimit checks the wallet cap against the caller's current
// wallet count.
func (m *Manager) CheckWalletCountLimit(current int) Result {
	if m.cfg.MaxWalletsPerUser > 0 && current >= m.cfg.MaxWalletsPerUser {
		return Result{Reason: fmt.Sprintf(
			"wallet limit reached (%d of %d)", current, m.cfg.MaxWalletsPerUser)}
	}
	return Result{Allowed: true}
}
