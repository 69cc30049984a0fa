package models

import "time"

type PendingTxType string // @name PendingTxType

const (
	PendingSendTon    PendingTxType = "send_ton"
	PendingSendJetton PendingTxType = "send_jetton"
	PendingSwap       PendingTxType = "swap"
)

// Amounts are decimal strings in nano units to keep integer precision on
// the wire and in storage.

type TonTransferData struct {
	Destination string  `json:"destination" msgpack:"destination"`
	Amount      string  `json:"amount" msgpack:"amount" example:"1000000000"`
	Comment     *string `json:"comment,omitempty" msgpack:"comment"`
} // @name TonTransferData

type JettonTransferData struct {
	JettonMaster string  `json:"jetton_master" msgpack:"jetton_master"`
	Destination  string  `json:"destination" msgpack:"destination"`
	Amount       string  `json:"amount" msgpack:"amount"`
	Comment      *string `json:"comment,omitempty" msgpack:"comment"`
} // @name JettonTransferData

type SwapData struct {
	FromToken   string `json:"from_token" msgpack:"from_token"`
	ToToken     string `json:"to_token" msgpack:"to_token"`
	Amount      string `json:"amount" msgpack:"amount"`
	MinReceived string `json:"min_received" msgpack:"min_received"`
} // @name SwapData

// PendingTransaction is a draft awaiting confirmation. Immutable once
// created; it is destroyed on confirm, cancel or TTL expiry. Exactly one
// of Ton, Jetton, Swap is set, matching Type.
type PendingTransaction struct {
	ID          string              `json:"id" msgpack:"id"`
	Type        PendingTxType       `json:"type" msgpack:"type"`
	WalletName  string              `json:"wallet_name" msgpack:"wallet_name"`
	CreatedAt   time.Time           `json:"created_at" msgpack:"created_at"`
	ExpiresAt   time.Time           `json:"expires_at" msgpack:"expires_at"`
	Description string              `json:"description,omitempty" msgpack:"description"`
	Ton         *TonTransferData    `json:"ton,omitempty" msgpack:"ton,omitempty"`
	Jetton      *JettonTransferData `json:"jetton,omitempty" msgpack:"jetton,omitempty"`
	Swap        *SwapData           `json:"swap,omitempty" msgpack:"swap,omitempty"`
} // @name PendingTransaction

// DailyUsage is one spend counter per user per calendar day. Stored with a
// TTL beyond 24h so stale records self-clean.
type DailyUsage struct {
	Date           string `json:"date" msgpack:"date" example:"2026-08-29"`
	TotalSpentNano int64  `json:"total_spent_nano" msgpack:"total_spent_nano"`
} // @name DailyUsage
