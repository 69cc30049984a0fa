package trace

import "github.com/ton-connect/kit-sub008/models"

// Opcode returns the opcode of the transaction's inbound message, or nil
// when there is no inbound message or the message carries no opcode.
func Opcode(tx *models.Transaction) *models.OpcodeType {
	if tx == nil || tx.InMsg == nil {
		return nil
	}
	return tx.InMsg.Opcode
}
