// Package session keeps the logged-in admin's token and cached profile.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"admin-console/internal/kv"
	"admin-console/internal/model"
)

const (
	KeyToken       = "admin_token"
	KeyProfile     = "admin_info"
	KeyAPIOverride = "admin_api_base_url"
)

// Store is the single active session. Mutations happen on login, logout,
// profile refresh and the forced clear after a 401.
type Store struct {
	kv  kv.Store
	now func() time.Time
	mu  sync.Mutex
}

func NewStore(backing kv.Store) *Store {
	return &Store{kv: backing, now: time.Now}
}

func (s *Store) Save(ctx context.Context, token string, profile model.Admin) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.kv.Set(ctx, KeyProfile, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Store) Token(ctx context.Context) (string, bool) {
	token, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		if !errors.Is(err, model.ErrKeyNotFound) {
			slog.Warn("session token unreadable", "error", err)
		}
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// Profile returns the cached admin. A missing or corrupt value reads as
// absent.
func (s *Store) Profile(ctx context.Context) (model.Admin, bool) {
	raw, err := s.kv.Get(ctx, KeyProfile)
	if err != nil {
		if !errors.Is(err, model.ErrKeyNotFound) {
			slog.Warn("session profile unreadable", "error", err)
		}
		return model.Admin{}, false
	}

	var profile model.Admin
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		slog.Warn("session profile is not valid JSON; ignoring", "error", err)
		return model.Admin{}, false
	}
	return profile, true
}

func (s *Store) SaveProfile(ctx context.Context, profile model.Admin) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, KeyProfile, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, KeyToken, KeyProfile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Valid reports whether a usable token is stored. Expiry comes from the
// unverified exp claim; tokens that are not JWTs never expire here and
// the backend stays the authority. An expired token is cleared.
func (s *Store) Valid(ctx context.Context) bool {
	token, ok := s.Token(ctx)
	if !ok {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	if s.now().Before(exp.Time) {
		return true
	}

	slog.Info("session token expired", "expired_at", exp.Time)
	if err := s.Clear(ctx); err != nil {
		slog.Warn("failed to clear expired session", "error", err)
	}
	return false
}

func (s *Store) APIBaseOverride(ctx context.Context) string {
	value, err := s.kv.Get(ctx, KeyAPIOverride)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

// SetAPIBaseOverride stores the backend address override. An empty value
// removes it.
func (s *Store) SetAPIBaseOverride(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return s.kv.Delete(ctx, KeyAPIOverride)
	}
	if err := s.kv.Set(ctx, KeyAPIOverride, url); err != nil {
		return fmt.Errorf("save api base override: %w", err)
	}
	return nil
}
