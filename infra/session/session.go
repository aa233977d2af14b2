package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FileName is the default name of the persisted token file.
const FileName = "socialfeed-token"

// ErrNoSession indicates that no bearer token is stored.
var ErrNoSession = errors.New("not logged in")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// Claims is the subset of JWT claims the client displays. Tokens that are not
// JWTs yield zero Claims.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// Store is the process-wide session holder. It is loaded once at startup,
// written on login, and cleared on logout or when the server answers 401.
type Store struct {
	path string

	mu     sync.RWMutex
	token  string
	claims Claims
}

// NewStore creates a Store persisted at path. Call Load to read it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the token file. A missing file is an empty session, not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session from %s: %w", s.path, err)
	}

	token := strings.TrimSpace(string(data))
	s.mu.Lock()
	s.token = token
	s.claims = parseClaims(token)
	s.mu.Unlock()
	return nil
}

// AccessToken returns the stored token or ErrNoSession.
func (s *Store) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoSession
	}
	return s.token, nil
}

// Authenticated reports whether a token is present and not known to be expired.
func (s *Store) Authenticated(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.claims.ExpiresAt.IsZero() || now.Before(s.claims.ExpiresAt)
}

// Claims returns what could be read from the current token.
func (s *Store) Claims() Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims
}

// Set stores and persists a new token.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to store empty token")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session to %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.token = token
	s.claims = parseClaims(token)
	s.mu.Unlock()
	return nil
}

// Clear forgets the token in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.claims = Claims{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// parseClaims reads claims without verifying the signature. The server is the
// only party that validates tokens.
func parseClaims(token string) Claims {
	if strings.Count(token, ".") != 2 {
		return Claims{}
	}
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}
	}
	c := Claims{
		Subject: tc.Subject,
		Email:   tc.Email,
		Name:    tc.Name,
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c
}
