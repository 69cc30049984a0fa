package storage

import (
	"context"
	"strings"
	"time"
)

// UserScoped namespaces every key with "<userID>:". Operations for one
// user cannot observe or mutate another user's keys: a lookup for an id
// that does not bear the caller's prefix is indistinguishable from
// not-found.
type UserScoped struct {
	inner  Storage
	prefix string
}

func NewUserScoped(inner Storage, userID string) *UserScoped {
	return &UserScoped{inner: inner, prefix: userID + ":"}
}

func (s *UserScoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *UserScoped) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, value, ttl)
}

func (s *UserScoped) GetDel(ctx context.Context, key string) ([]byte, error) {
	return s.inner.GetDel(ctx, s.prefix+key)
}

func (s *UserScoped) Delete(ctx context.Context, key string) (bool, error) {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *UserScoped) List(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.List(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, s.prefix))
	}
	return out, nil
}

// Signer is the signing/broadcast collaborator a confirmed pending
// transaction is handed to. Signing itself is outside this service.
type Signer interface {
	Sign(ctx context.Context, walletName string, payload []byte) ([]byte, error)
}

// ScopedSigner namespaces wallet names the same way UserScoped namespaces
// keys, so one user cannot sign with another user's wallet. An unknown or
// foreign wallet surfaces as the signer's own not-found error.
type ScopedSigner struct {
	inner  Signer
	prefix string
}

func NewScopedSigner(inner Signer, userID string) *ScopedSigner {
	return &ScopedSigner{inner: inner, prefix: userID + ":"}
}

func (s *ScopedSigner) Sign(ctx context.Context, walletName string, payload []byte) ([]byte, error) {
	return s.inner.Sign(ctx, s.prefix+walletName, payload)
}
