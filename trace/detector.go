package trace

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ton-connect/kit-sub008/models"
)

// Detector is a predicate over the transactions of a trace.
type Detector func(txs map[models.HashType]*models.Transaction) bool

// NewTypeDetector returns a detector reporting whether any transaction's
// inbound opcode belongs to the trigger set. Pure existence check, map
// iteration order does not matter.
func NewTypeDetector(trigger mapset.Set[models.OpcodeType]) Detector {
	return func(txs map[models.HashType]*models.Transaction) bool {
		for _, tx := range txs {
			if op := Opcode(tx); op != nil && trigger.Contains(*op) {
				return true
			}
		}
		return false
	}
}

// NewFailureDetector returns a detector reporting whether the trace failed.
// An aborted transaction whose opcode is in the nonCritical set is skipped;
// any other abort fails the trace. An aborted transaction without a
// resolvable opcode is always critical.
func NewFailureDetector(nonCritical mapset.Set[models.OpcodeType]) Detector {
	return func(txs map[models.HashType]*models.Transaction) bool {
		for _, tx := range txs {
			if tx == nil || tx.Descr.Aborted == nil || !*tx.Descr.Aborted {
				continue
			}
			if op := Opcode(tx); op != nil && nonCritical.Contains(*op) {
				continue
			}
			return true
		}
		return false
	}
}
