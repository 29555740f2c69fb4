package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SessionEnv overrides the session file location
const SessionEnv = "ASSETCTL_SESSION"

// Session is the signed-in identity the console keeps between commands
type Session struct {
	Token    string         `yaml:"token"`
	TenantID string         `yaml:"tenantId"`
	UserID   string         `yaml:"userId"`
	UserRole string         `yaml:"userRole"`
	Email    string         `yaml:"email"`
	User     map[string]any `yaml:"user,omitempty"`

	path string
}

// DefaultSessionPath returns $ASSETCTL_SESSION, or ~/.assetctl/session.yaml
func DefaultSessionPath() (string, error) {
	if p := os.Getenv(SessionEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".assetctl", "session.yaml"), nil
}

// LoadSession reads the session at path. A missing file is an empty session.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	return s, nil
}

// Path is the file the session is stored in
func (s *Session) Path() string {
	return s.path
}

// Authenticated reports whether a token is present
func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// Save writes the session with owner-only permissions
func (s *Session) Save() error {
	if s.path == "" {
		return errors.New("session has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear forgets the identity and removes the file
func (s *Session) Clear() error {
	path := s.path
	*s = Session{path: path}
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
