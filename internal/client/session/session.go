// Package session holds the client's authentication state: the current user
// and bearer token, persisted to a JSON state file so a restarted client
// stays logged in. Token and user are written and cleared together; the
// state is never partially present.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"minflow/internal/dto"
	"minflow/internal/models"
)

// AuthAPI is the slice of the API client the session store needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*dto.AuthData, error)
	Signup(ctx context.Context, email, password, name string) (*dto.AuthData, error)
}

// TokenSink receives the bearer token whenever the session changes, so the
// API client always carries the current credentials
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// state is the persisted shape of the session file
type state struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Store is the process-wide authentication state. Not safe for concurrent
// use; the terminal client is single-threaded.
type Store struct {
	api      AuthAPI
	sink     TokenSink
	filePath string

	token string
	user  *models.User
}

// NewStore creates a session store persisting to filePath. The sink may be
// nil when no API client needs token updates (tests).
func NewStore(api AuthAPI, sink TokenSink, filePath string) *Store {
	return &Store{
		api:      api,
		sink:     sink,
		filePath: filePath,
	}
}

// IsAuthenticated reports whether a full session is present. True exactly
// when both the user and the token are set.
func (s *Store) IsAuthenticated() bool {
	return s.user != nil && s.token != ""
}

// User returns the cached user, or nil when unauthenticated
func (s *Store) User() *models.User {
	return s.user
}

// Token returns the current bearer token, or "" when unauthenticated
func (s *Store) Token() string {
	return s.token
}

// Login authenticates against the API. On success the session is hydrated
// and persisted; on failure state is left unauthenticated and the error is
// propagated for the caller to surface.
func (s *Store) Login(ctx context.Context, email, password string) error {
	data, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(data)
}

// Signup registers a new account with the same contract as Login
func (s *Store) Signup(ctx context.Context, email, password, name string) error {
	data, err := s.api.Signup(ctx, email, password, name)
	if err != nil {
		return err
	}
	return s.establish(data)
}

func (s *Store) establish(data *dto.AuthData) error {
	if data == nil || data.Token == "" || data.User == nil {
		return errors.New("authentication response missing token or user")
	}

	s.token = data.Token
	s.user = data.User
	if s.sink != nil {
		s.sink.SetToken(s.token)
	}

	if err := s.save(); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// Logout clears durable storage and in-memory state unconditionally. No
// network call is made and the operation cannot fail; a missing state file
// is already logged out.
func (s *Store) Logout() {
	s.token = ""
	s.user = nil
	if s.sink != nil {
		s.sink.ClearToken()
	}
	_ = os.Remove(s.filePath)
}

// LoadFromStorage hydrates the session from the state file. Idempotent and
// safe to call redundantly: it replaces in-memory state only when the file
// holds BOTH a token and a user, and leaves existing state untouched
// otherwise.
func (s *Store) LoadFromStorage() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var stored state
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("decoding session file: %w", err)
	}
	if stored.Token == "" || stored.User == nil {
		return nil
	}

	s.token = stored.Token
	s.user = stored.User
	if s.sink != nil {
		s.sink.SetToken(s.token)
	}
	return nil
}

// save writes token and user together via a temp file rename, so the state
// file is always either the full previous session or the full new one
func (s *Store) save() error {
	raw, err := json.MarshalIndent(state{Token: s.token, User: s.user}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.filePath)
}
