package kv

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"admin-console/internal/model"
)

const (
	sealedPrefix = "sealed:v1:"
	nonceSize    = 24
)

// SealedStore encrypts the values of selected keys with NaCl secretbox
// before handing them to the wrapped store. Other keys pass through.
type SealedStore struct {
	inner Store
	key   [32]byte
	keys  map[string]struct{}
}

func NewSealedStore(inner Store, secret string, keys ...string) (*SealedStore, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("sealed store requires a secret")
	}

	s := &SealedStore{inner: inner, keys: map[string]struct{}{}}
	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte("admin-console session"))
	if _, err := io.ReadFull(reader, s.key[:]); err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}

	for _, key := range keys {
		s.keys[key] = struct{}{}
	}

	return s, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if _, sealed := s.keys[key]; !sealed {
		return raw, nil
	}

	return s.open(raw)
}

func (s *SealedStore) Set(ctx context.Context, key string, value string) error {
	if _, sealed := s.keys[key]; !sealed {
		return s.inner.Set(ctx, key, value)
	}

	boxed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, boxed)
}

func (s *SealedStore) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

func (s *SealedStore) seal(value string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *SealedStore) open(raw string) (string, error) {
	if !strings.HasPrefix(raw, sealedPrefix) {
		return "", model.ErrSealedValue
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(raw, sealedPrefix))
	if err != nil || len(data) < nonceSize {
		return "", model.ErrSealedValue
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])
	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", model.ErrSealedValue
	}

	return string(plain), nil
}
