package trace

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ton-connect/kit-sub008/models"
)

func tx(hash, opcode string, aborted bool) *models.Transaction {
	t := &models.Transaction{Hash: models.HashType(hash)}
	if aborted {
		v := true
		t.Descr.Aborted = &v
	}
	if opcode != "" {
		op := models.OpcodeType(opcode)
		t.InMsg = &models.Message{Opcode: &op}
	}
	return t
}

func txMap(txs ...*models.Transaction) map[models.HashType]*models.Transaction {
	m := make(map[models.HashType]*models.Transaction)
	for _, t := range txs {
		m[t.Hash] = t
	}
	return m
}

func TestOpcode(t *testing.T) {
	if Opcode(nil) != nil {
		t.Error("expected nil opcode for nil transaction")
	}
	if Opcode(&models.Transaction{}) != nil {
		t.Error("expected nil opcode without in_msg")
	}
	if Opcode(&models.Transaction{InMsg: &models.Message{}}) != nil {
		t.Error("expected nil opcode for in_msg without opcode")
	}
	op := Opcode(tx("a", "0x0f8a7ea5", false))
	if op == nil || *op != "0x0f8a7ea5" {
		t.Errorf("expected opcode 0x0f8a7ea5, got %v", op)
	}
}

func TestTypeDetector(t *testing.T) {
	detect := NewTypeDetector(mapset.NewSet[models.OpcodeType]("0x0f8a7ea5"))

	txs := txMap(
		tx("a", "0x11111111", false),
		tx("b", "0x0f8a7ea5", false),
		tx("c", "", false),
	)
	if !detect(txs) {
		t.Error("expected trigger opcode to be detected")
	}
	if detect(txMap(tx("a", "0x11111111", false))) {
		t.Error("expected no match without trigger opcode")
	}
	if detect(nil) {
		t.Error("expected no match for empty trace")
	}
}

func TestTypeDetectorOrderIndependent(t *testing.T) {
	detect := NewTypeDetector(mapset.NewSet[models.OpcodeType]("0x0f8a7ea5"))
	txs := txMap(
		tx("a", "0x11111111", false),
		tx("b", "0x22222222", false),
		tx("c", "0x0f8a7ea5", false),
		tx("d", "0x33333333", false),
	)
	// Map iteration order varies between runs; the verdict must not.
	for i := 0; i < 100; i++ {
		if !detect(txs) {
			t.Fatal("detector verdict changed with iteration order")
		}
	}
}

func TestFailureDetectorNonCriticalSkipped(t *testing.T) {
	failed := NewFailureDetector(mapset.NewSet[models.OpcodeType]("0xd53276db", "0x7362d09c"))

	if failed(txMap(tx("a", "0x0f8a7ea5", false), tx("b", "0xd53276db", true))) {
		t.Error("non-critical abort must not fail the trace")
	}
	if !failed(txMap(tx("a", "0x0f8a7ea5", true), tx("b", "0xd53276db", true))) {
		t.Error("critical abort must fail the trace")
	}
}

func TestFailureDetectorUnknownOpcodeAbortIsCritical(t *testing.T) {
	failed := NewFailureDetector(mapset.NewSet[models.OpcodeType]("0xd53276db"))

	if !failed(txMap(tx("a", "", true))) {
		t.Error("abort without resolvable opcode must be critical")
	}
}

func TestFailureDetectorEmptyNonCriticalSet(t *testing.T) {
	failed := NewFailureDetector(mapset.NewSet[models.OpcodeType]())

	if !failed(txMap(tx("a", "0xd53276db", true))) {
		t.Error("with an empty non-critical set every abort fails the trace")
	}
	if failed(txMap(tx("a", "0xd53276db", false))) {
		t.Error("no abort means no failure")
	}
}
