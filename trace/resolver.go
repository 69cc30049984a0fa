package trace

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/ton-connect/kit-sub008/models"
)

// Well-known TEP opcodes.
const (
	OpJettonTransfer models.OpcodeType = "0x0f8a7ea5"
	OpJettonNotify   models.OpcodeType = "0x7362d09c"
	OpExcesses       models.OpcodeType = "0xd53276db"

	OpNftTransfer          models.OpcodeType = "0x5fcc3d14"
	OpNftOwnershipAssigned models.OpcodeType = "0x05138d91"
)

// Pattern identifies a known transaction shape by trigger opcodes and
// carries the failure tolerance for its non-critical side messages.
type Pattern struct {
	Name    string
	matches Detector
	failed  Detector
}

func NewPattern(name string, trigger, nonCritical mapset.Set[models.OpcodeType]) Pattern {
	return Pattern{
		Name:    name,
		matches: NewTypeDetector(trigger),
		failed:  NewFailureDetector(nonCritical),
	}
}

// DefaultPatterns returns the built-in patterns in priority order. The
// first matching pattern wins.
func DefaultPatterns() []Pattern {
	return []Pattern{
		NewPattern("jetton_transfer",
			mapset.NewSet(OpJettonTransfer),
			mapset.NewSet(OpJettonNotify, OpExcesses)),
		NewPattern("nft_transfer",
			mapset.NewSet(OpNftTransfer),
			mapset.NewSet(OpNftOwnershipAssigned, OpExcesses)),
	}
}

// FallbackPolicy selects how traces that match no known pattern are judged.
type FallbackPolicy string

const (
	// FallbackRootOnly attributes failure only to the root transaction's
	// abort. Aborts deeper in an unrecognized tree may be inconsequential
	// side effects and are not counted.
	FallbackRootOnly FallbackPolicy = "root"
	// FallbackAnyAbort treats any aborted transaction as overall failure.
	FallbackAnyAbort FallbackPolicy = "any"
)

func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case FallbackRootOnly, FallbackAnyAbort:
		return FallbackPolicy(s), nil
	}
	return "", fmt.Errorf("unknown fallback policy %q, expected %q or %q", s, FallbackRootOnly, FallbackAnyAbort)
}

// Resolver decides whether an entire trace represents failure.
type Resolver struct {
	patterns []Pattern
	fallback FallbackPolicy
	anyAbort Detector
}

func NewResolver(fallback FallbackPolicy) *Resolver {
	return NewResolverWithPatterns(DefaultPatterns(), fallback)
}

func NewResolverWithPatterns(patterns []Pattern, fallback FallbackPolicy) *Resolver {
	return &Resolver{
		patterns: patterns,
		fallback: fallback,
		anyAbort: NewFailureDetector(mapset.NewSet[models.OpcodeType]()),
	}
}

// Failed reports the verdict for the trace. An empty trace carries no
// evidence of failure.
func (r *Resolver) Failed(t *models.Trace) bool {
	if t == nil || len(t.Transactions) == 0 {
		return false
	}
	for _, p := range r.patterns {
		if p.matches(t.Transactions) {
			return p.failed(t.Transactions)
		}
	}
	if r.fallback == FallbackAnyAbort {
		return r.anyAbort(t.Transactions)
	}
	if len(t.TransactionsOrder) == 0 {
		return false
	}
	root, ok := t.Transactions[t.TransactionsOrder[0]]
	if !ok || root == nil {
		return false
	}
	return root.Descr.Aborted != nil && *root.Descr.Aborted
}
