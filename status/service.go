// Package status turns raw trace lookups into a normalized transaction
// status.
package status

import (
	"context"
	"encoding/base64"
	"encoding/hex"

	"github.com/sirupsen/logrus"

	"github.com/ton-connect/kit-sub008/models"
	"github.com/ton-connect/kit-sub008/msgnorm"
	"github.com/ton-connect/kit-sub008/trace"
)

// TraceSource shards in-flight and finalized traces behind two lookups,
// both keyed by the normalized external message hash.
type TraceSource interface {
	PendingTraces(ctx context.Context, extMsgHash string) (*models.TracesResponse, error)
	Traces(ctx context.Context, traceID string) (*models.TracesResponse, error)
}

type Service struct {
	source   TraceSource
	resolver *trace.Resolver
	log      *logrus.Logger
}

func NewService(source TraceSource, resolver *trace.Resolver, log *logrus.Logger) *Service {
	return &Service{source: source, resolver: resolver, log: log}
}

// ResolveIdentifier accepts either an already-computed normalized message
// hash (base64 or hex of 32 bytes) or a base64 BOC of the signed external
// message, which is normalized first. A malformed BOC is an error.
//
// Hex is tried first, and only for exactly 64 characters. The forms do
// not collide: a base64 hash is 44 characters, and 64 base64 characters
// decode to 48 bytes, far short of any signed external message BOC.
func ResolveIdentifier(id string) (string, error) {
	if len(id) == 64 {
		if raw, err := hex.DecodeString(id); err == nil {
			return base64.StdEncoding.EncodeToString(raw), nil
		}
	}
	if raw, err := base64.StdEncoding.DecodeString(id); err == nil && len(raw) == 32 {
		return id, nil
	}
	hash, _, err := msgnorm.NormalizedHash(id)
	if err != nil {
		return "", err
	}
	return hash, nil
}

// GetTransactionStatus queries pending traces first, then completed
// traces. A transport failure in one phase is swallowed so the other phase
// can still answer; when no trace is found anywhere the message is assumed
// to not have propagated yet and the status is pending with zero counts.
func (s *Service) GetTransactionStatus(ctx context.Context, identifier string) (*models.TransactionStatus, error) {
	hash, err := ResolveIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	if resp, err := s.source.PendingTraces(ctx, hash); err != nil {
		s.log.WithError(err).WithField("hash", hash).Warn("pending trace lookup failed")
	} else if st := s.parseTraces(resp); st != nil {
		return st, nil
	}

	if resp, err := s.source.Traces(ctx, hash); err != nil {
		s.log.WithError(err).WithField("hash", hash).Warn("completed trace lookup failed")
	} else if st := s.parseTraces(resp); st != nil {
		return st, nil
	}

	return &models.TransactionStatus{Status: models.StatusPending}, nil
}

// parseTraces converts a raw traces response to a status, or nil when the
// response holds no trace (not found yet). Only the first entry is
// considered: each root hash maps to at most one trace.
func (s *Service) parseTraces(resp *models.TracesResponse) *models.TransactionStatus {
	if resp == nil || len(resp.Traces) == 0 {
		return nil
	}
	t := &resp.Traces[0]
	info := t.TraceMeta

	st := &models.TransactionStatus{
		Status:            models.StatusPending,
		TotalMessages:     info.Messages,
		PendingMessages:   info.PendingMessages,
		CompletedMessages: info.Messages - info.PendingMessages,
		OnchainMessages:   info.Messages - info.PendingMessages,
	}
	// Failure detection is only meaningful once the trace stopped growing.
	if info.PendingMessages == 0 {
		if s.resolver.Failed(t) {
			st.Status = models.StatusFailed
		} else if info.TraceState == "complete" || info.TraceState == "pending" {
			st.Status = models.StatusCompleted
		}
	}
	return st
}
