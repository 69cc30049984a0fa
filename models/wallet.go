package models

import "time"

// Wallet is a registered wallet reference scoped to its owning user.
// Signing keys never pass through this service.
type Wallet struct {
	Name      string    `json:"name" msgpack:"name"`
	Address   string    `json:"address" msgpack:"address"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
} // @name Wallet
