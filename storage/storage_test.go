package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestStorage(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return NewRedis(client), mr
}

func TestRedisRoundTrip(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "v" {
		t.Errorf("expected 'v', got %q", data)
	}

	ok, err := s.Delete(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected delete to succeed, got %v, %v", ok, err)
	}
	ok, err = s.Delete(ctx, "k")
	if err != nil || ok {
		t.Errorf("expected second delete to report false, got %v, %v", ok, err)
	}
}

func TestRedisTTL(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("expected key before TTL, got %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound past TTL, got %v", err)
	}
	keys, err := s.List(ctx, "k")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected expired key gone from List, got %v", keys)
	}
}

func TestRedisGetDelConsumeOnce(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, err := s.GetDel(ctx, "k")
	if err != nil || string(data) != "v" {
		t.Fatalf("expected value from GetDel, got %q, %v", data, err)
	}
	if _, err := s.GetDel(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second GetDel, got %v", err)
	}
}

func TestRedisListPrefix(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	for _, k := range []string{"pending:1", "pending:2", "usage:2026-08-29"} {
		if err := s.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	keys, err := s.List(ctx, "pending:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 pending keys, got %v", keys)
	}
}

func TestUserScopedIsolation(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	alice := NewUserScoped(s, "alice")
	bob := NewUserScoped(s, "bob")

	if err := alice.Set(ctx, "pending:1", []byte("a"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := bob.Get(ctx, "pending:1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected foreign key to be not-found, got %v", err)
	}
	keys, err := bob.List(ctx, "pending:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys for bob, got %v", keys)
	}

	keys, err = alice.List(ctx, "pending:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "pending:1" {
		t.Errorf("expected scoped prefix stripped from List, got %v", keys)
	}

	if ok, _ := bob.Delete(ctx, "pending:1"); ok {
		t.Error("bob must not be able to delete alice's key")
	}
	if _, err := alice.Get(ctx, "pending:1"); err != nil {
		t.Errorf("alice's key must survive bob's delete, got %v", err)
	}
}

func TestUserScopedGlobUserID(t *testing.T) {
	s, mr := setupTestStorage(t)
	defer mr.Close()
	ctx := context.Background()

	bob := NewUserScoped(s, "bob")
	if err := bob.Set(ctx, "pending:1", []byte("b"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A user id carrying glob operators must match its own keys
	// literally, never widen onto other users' keyspaces.
	for _, userID := range []string{"bo*", "b?b", "[ab]ob", `b\ob`} {
		u := NewUserScoped(s, userID)
		keys, err := u.List(ctx, "pending:")
		if err != nil {
			t.Fatalf("List failed for %q: %v", userID, err)
		}
		if len(keys) != 0 {
			t.Errorf("user %q observed foreign keys: %v", userID, keys)
		}
	}

	evil := NewUserScoped(s, "bo*")
	if err := evil.Set(ctx, "pending:1", []byte("e"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	keys, err := evil.List(ctx, "pending:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "pending:1" {
		t.Errorf("expected only the user's own key, got %v", keys)
	}
	data, err := bob.Get(ctx, "pending:1")
	if err != nil || string(data) != "b" {
		t.Errorf("bob's key must be untouched, got %q, %v", data, err)
	}
}

type recordingSigner struct {
	walletName string
}

func (r *recordingSigner) Sign(ctx context.Context, walletName string, payload []byte) ([]byte, error) {
	r.walletName = walletName
	return payload, nil
}

func TestScopedSigner(t *testing.T) {
	inner := &recordingSigner{}
	signer := NewScopedSigner(inner, "alice")

	if _, err := signer.Sign(context.Background(), "main", []byte("msg")); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if inner.walletName != "alice:main" {
		t.Errorf("expected namespaced wallet name, got %q", inner.walletName)
	}
}

func TestCodecs(t *testing.T) {
	type record struct {
		Name  string `msgpack:"name"`
		Count int64  `msgpack:"count"`
	}
	data, err := Encode(record{Name: "a", Count: 7})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode[record](data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Name != "a" || got.Count != 7 {
		t.Errorf("unexpected decode result: %+v", got)
	}

	if _, err := Decode[record]([]byte("not msgpack at all")); !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("expected ErrDecodeFailed, got %v", err)
	}
}
