package models

type TxStatus string // @name TxStatus

const (
	StatusPending   TxStatus = "pending"
	StatusCompleted TxStatus = "completed"
	StatusFailed    TxStatus = "failed"
)

// TransactionStatus is computed fresh on every query. The trace source is
// the source of truth; nothing here is persisted.
type TransactionStatus struct {
	Status            TxStatus `json:"status"`
	TotalMessages     int64    `json:"total_messages"`
	PendingMessages   int64    `json:"pending_messages"`
	CompletedMessages int64    `json:"completed_messages"`
	OnchainMessages   int64    `json:"onchain_messages"`
} // @name TransactionStatus
