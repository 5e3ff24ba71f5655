// Package session owns authentication state. The gate stands in front of
// all protected functionality: nothing else runs until a bearer token
// exists, either read back from durable storage or acquired interactively.
package session

import (
	"context"

	"github.com/TheCasperSolangi/arc-fun-front/internal/console/store"
)

// tokenKey is the fixed storage key holding the persisted session token.
const tokenKey = "token"

// SessionStore is the persisted-token capability injected into the gate and
// into the record operations that need the bearer credential. A token
// survives restarts until overwritten by a new login.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
}

// KVSessionStore implements SessionStore over the durable key-value store.
type KVSessionStore struct {
	kv store.Store
}

func NewKVSessionStore(kv store.Store) *KVSessionStore {
	return &KVSessionStore{kv: kv}
}

func (s *KVSessionStore) Token(ctx context.Context) (string, error) {
	v, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *KVSessionStore) SetToken(ctx context.Context, token string) error {
	return s.kv.Set(ctx, tokenKey, []byte(token))
}
