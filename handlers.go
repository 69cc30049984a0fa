package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ton-connect/kit-sub008/limits"
	"github.com/ton-connect/kit-sub008/models"
	"github.com/ton-connect/kit-sub008/pending"
	"github.com/ton-connect/kit-sub008/storage"
)

const walletKeyPrefix = "wallet:"

type StatusRequest struct {
	Boc string `json:"boc" example:"te6ccgEBAQEAAgAAAA=="`
} // @name StatusRequest

func (req StatusRequest) Validate() error {
	if req.Boc == "" {
		return fmt.Errorf("boc is required")
	}
	if _, err := base64.StdEncoding.Strict().DecodeString(req.Boc); err != nil {
		return fmt.Errorf("invalid boc: %v", err)
	}
	return nil
}

type RegisterWalletRequest struct {
	Name    string `json:"name" example:"main"`
	Address string `json:"address" example:"EQB3ncyBUTjZUA5EnFKR5_EnOMI9V1tTEAAPaiU71gc4TiUt"`
} // @name RegisterWalletRequest

func (req RegisterWalletRequest) Validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

type PendingListResponse struct {
	PendingTransactions []*models.PendingTransaction `json:"pending_transactions"`
} // @name PendingListResponse

type WalletListResponse struct {
	Wallets []*models.Wallet `json:"wallets"`
} // @name WalletListResponse

// userStorage builds the caller's namespaced storage view. Every handler
// goes through it; no handler touches the shared store directly.
func userStorage(c *fiber.Ctx) (*storage.UserScoped, error) {
	userID := c.Get("X-User-Id")
	if userID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "X-User-Id header is required")
	}
	return storage.NewUserScoped(store, userID), nil
}

func tonAmount(data *models.TonTransferData) (float64, bool) {
	if data == nil {
		return 0, false
	}
	nano, err := strconv.ParseInt(data.Amount, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(nano) / limits.NanoPerTon, true
}

// CreatePendingTransaction godoc
// @Summary Create pending transaction
// @Schemes
// @Description Create a time-boxed draft transaction awaiting confirmation.
// @Tags pending
// @Accept json
// @Produce json
// @Param   X-User-Id   header  string                 true   "User identifier"
// @Param   request     body    pending.CreateRequest  true   "Pending Transaction Request"
// @Router /v1/pending [post]
func createPendingTransaction(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}

	var req pending.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}

	if amount, ok := tonAmount(req.Ton); ok {
		res, err := limitsMgr.CheckTransactionLimit(ctx, us, amount)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to check limits: "+err.Error())
		}
		if !res.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(res)
		}
	}

	rec, err := pending.NewManager(us, *pendingTTL).Create(ctx, req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create pending transaction: "+err.Error())
	}
	return c.Status(200).JSON(rec)
}

// ListPendingTransactions godoc
// @Summary List pending transactions
// @Schemes
// @Description List the caller's live draft transactions, newest first.
// @Tags pending
// @Produce json
// @Param   X-User-Id   header  string  true   "User identifier"
// @Router /v1/pending [get]
func listPendingTransactions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}
	recs, err := pending.NewManager(us, *pendingTTL).List(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list pending transactions: "+err.Error())
	}
	return c.Status(200).JSON(PendingListResponse{PendingTransactions: recs})
}

// ConfirmPendingTransaction godoc
// @Summary Confirm pending transaction
// @Schemes
// @Description Consume a draft so the caller can sign and broadcast it. Consume-once.
// @Tags pending
// @Produce json
// @Param   X-User-Id   header  string  true   "User identifier"
// @Param   id          path    string  true   "Pending transaction id"
// @Router /v1/pending/{id}/confirm [post]
func confirmPendingTransaction(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}
	rec, err := pending.NewManager(us, *pendingTTL).Confirm(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to confirm pending transaction: "+err.Error())
	}
	if rec == nil {
		return fiber.NewError(fiber.StatusNotFound, "pending transaction not found")
	}

	if amount, ok := tonAmount(rec.Ton); ok {
		if err := limitsMgr.RecordTransaction(ctx, us, amount); err != nil {
			log.WithError(err).WithField("id", rec.ID).Error("Failed to record daily spend")
		}
	}
	return c.Status(200).JSON(rec)
}

// CancelPendingTransaction godoc
// @Summary Cancel pending transaction
// @Schemes
// @Description Discard a draft transaction.
// @Tags pending
// @Produce json
// @Param   X-User-Id   header  string  true   "User identifier"
// @Param   id          path    string  true   "Pending transaction id"
// @Router /v1/pending/{id}/cancel [post]
func cancelPendingTransaction(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}
	ok, err := pending.NewManager(us, *pendingTTL).Cancel(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to cancel pending transaction: "+err.Error())
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "pending transaction not found")
	}
	return c.Status(200).JSON(fiber.Map{"cancelled": true})
}

// GetTransactionStatus godoc
// @Summary Get transaction status
// @Schemes
// @Description Resolve the status of a broadcast transaction by its normalized message hash.
// @Tags status
// @Produce json
// @Param   msg_hash    query   string  true   "Normalized message hash (base64 or hex)"
// @Router /v1/status [get]
func getTransactionStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	id := c.Query("msg_hash")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "msg_hash parameter is required")
	}
	st, err := statusSvc.GetTransactionStatus(ctx, id)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message: "+err.Error())
	}
	return c.Status(200).JSON(st)
}

// GetTransactionStatusByBoc godoc
// @Summary Get transaction status by message BOC
// @Schemes
// @Description Normalize a signed external message and resolve the status of its trace.
// @Tags status
// @Accept json
// @Produce json
// @Param   request     body    StatusRequest  true   "Signed external message"
// @Router /v1/status [post]
func getTransactionStatusByBoc(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}
	st, err := statusSvc.GetTransactionStatus(ctx, req.Boc)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message: "+err.Error())
	}
	return c.Status(200).JSON(st)
}

// RegisterWallet godoc
// @Summary Register wallet
// @Schemes
// @Description Register a wallet reference for the caller, subject to the wallet-count cap.
// @Tags wallets
// @Accept json
// @Produce json
// @Param   X-User-Id   header  string                 true   "User identifier"
// @Param   request     body    RegisterWalletRequest  true   "Wallet"
// @Router /v1/wallets [post]
func registerWallet(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}

	var req RegisterWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}

	keys, err := us.List(ctx, walletKeyPrefix)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list wallets: "+err.Error())
	}
	if res := limitsMgr.CheckWalletCountLimit(len(keys)); !res.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(res)
	}

	wallet := &models.Wallet{Name: req.Name, Address: req.Address, CreatedAt: time.Now()}
	data, err := storage.Encode(wallet)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to encode wallet: "+err.Error())
	}
	if err := us.Set(ctx, walletKeyPrefix+wallet.Name, data, 0); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to store wallet: "+err.Error())
	}
	return c.Status(200).JSON(wallet)
}

// ListWallets godoc
// @Summary List wallets
// @Schemes
// @Description List the caller's registered wallets.
// @Tags wallets
// @Produce json
// @Param   X-User-Id   header  string  true   "User identifier"
// @Router /v1/wallets [get]
func listWallets(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	us, err := userStorage(c)
	if err != nil {
		return err
	}
	keys, err := us.List(ctx, walletKeyPrefix)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list wallets: "+err.Error())
	}
	wallets := make([]*models.Wallet, 0, len(keys))
	for _, key := range keys {
		data, err := us.Get(ctx, key)
		if err != nil {
			continue
		}
		wallet, err := storage.Decode[models.Wallet](data)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to decode wallet: "+err.Error())
		}
		wallets = append(wallets, &wallet)
	}
	return c.Status(200).JSON(WalletListResponse{Wallets: wallets})
}

// HealthCheck godoc
// @Summary Service health
// @Schemes
// @Produce json
// @Router /healthcheck [get]
func healthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "redis unavailable: "+err.Error())
	}
	return c.Status(200).JSON(fiber.Map{"status": "ok"})
}
