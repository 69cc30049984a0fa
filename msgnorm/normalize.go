// Package msgnorm derives the normalized hash of a signed external
// message. The hash is taken over the message with its source address and
// import fee zeroed, so it is independent of relay/import metadata and can
// join a broadcast message with its resulting trace.
package msgnorm

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

var ErrNotExternalIn = errors.New("message is not external-in")

// NormalizedHash parses a base64 BOC of a signed external-in message,
// zeroes the source address and import fee, re-serializes and hashes it.
// Returns the base64 hash and the normalized BOC. Malformed input and
// non-external-in messages are errors.
func NormalizedHash(bocB64 string) (string, []byte, error) {
	raw, err := base64.StdEncoding.DecodeString(bocB64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 boc: %w", err)
	}
	c, err := cell.FromBOC(raw)
	if err != nil {
		return "", nil, fmt.Errorf("invalid boc: %w", err)
	}

	var msg tlb.Message
	if err := tlb.LoadFromCell(&msg, c.BeginParse()); err != nil {
		return "", nil, fmt.Errorf("failed to parse message: %w", err)
	}
	if msg.MsgType != tlb.MsgTypeExternalIn {
		return "", nil, ErrNotExternalIn
	}
	ext := msg.AsExternalIn()

	normalized := &tlb.ExternalMessage{
		SrcAddr:   address.NewAddressNone(),
		DstAddr:   ext.DstAddr,
		ImportFee: tlb.FromNanoTONU(0),
		StateInit: ext.StateInit,
		Body:      ext.Body,
	}
	nc, err := tlb.ToCell(normalized)
	if err != nil {
		return "", nil, fmt.Errorf("failed to serialize normalized message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(nc.Hash()), nc.ToBOC(), nil
}
