package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/enums"
	"github.com/kiarashop/storefront/pkg/kv"
	"github.com/kiarashop/storefront/pkg/logger"
)

const storageKey = "session"

// GuestPartition is the cart partition used when nobody is signed in.
const GuestPartition = "cart_guest"

// Identity is the client's view of who is shopping right now.
type Identity struct {
	UserID int64      `json:"userId"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   enums.Role `json:"role"`
}

// IsGuest reports whether no authenticated user is active.
func (i Identity) IsGuest() bool {
	return i.UserID == 0
}

// PartitionKey names the cart partition owned by this identity.
func (i Identity) PartitionKey() string {
	if i.IsGuest() {
		return GuestPartition
	}
	return fmt.Sprintf("cart_%d", i.UserID)
}

type persistedSession struct {
	Identity Identity `json:"identity"`
	Token    string   `json:"token"`
}

// Store holds the active identity and token, persisting them so a restart
// resumes the same session. It implements backend.TokenSource.
type Store struct {
	mu    sync.RWMutex
	ident Identity
	token string

	storage kv.Store
	logg    *logger.Logger
}

// NewStore creates a guest-session store backed by the given storage.
func NewStore(storage kv.Store, logg *logger.Logger) *Store {
	return &Store{storage: storage, logg: logg}
}

// Restore loads a previously persisted session. A token whose exp claim has
// passed is dropped; the server would reject it anyway.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var stored persistedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Corrupt record: start over as guest rather than fail the boot.
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding unreadable session record")
		}
		return s.storage.Delete(ctx, storageKey)
	}

	if stored.Token != "" && tokenExpired(stored.Token) {
		if s.logg != nil {
			s.logg.Info(ctx, "stored session token expired, starting as guest")
		}
		return s.storage.Delete(ctx, storageKey)
	}

	s.mu.Lock()
	s.ident = stored.Identity
	s.token = stored.Token
	s.mu.Unlock()
	return nil
}

// tokenExpired parses the JWT without verifying its signature; the client has
// no signing key and only needs the exp claim.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Establish switches to the authenticated identity returned by login/register
// and persists it.
func (s *Store) Establish(ctx context.Context, auth backend.AuthResponse) error {
	ident := Identity{
		UserID: auth.ID,
		Name:   auth.Name,
		Email:  auth.Email,
		Role:   auth.Role,
	}

	s.mu.Lock()
	s.ident = ident
	s.token = auth.AccessToken
	s.mu.Unlock()

	return s.persist(ctx)
}

// Logout reverts to the guest identity and drops the persisted record.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.ident = Identity{}
	s.token = ""
	s.mu.Unlock()

	return s.storage.Delete(ctx, storageKey)
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.RLock()
	stored := persistedSession{Identity: s.ident, Token: s.token}
	s.mu.RUnlock()

	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, storageKey, raw)
}

// Current returns the active identity.
func (s *Store) Current() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident
}

// Token implements backend.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
