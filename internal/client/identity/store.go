package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnreadableSession means the stored session exists but cannot be decoded.
var ErrUnreadableSession = errors.New("unreadable session file")

// CredentialStore persists the credential between runs.
type CredentialStore interface {
	// Load returns nil, nil when nothing is stored.
	Load() (*Credential, error)
	Save(cred *Credential) error
	Clear() error
}

// FileStore keeps the credential in a YAML file readable only by its owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Credential, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var cred Credential
	if err := yaml.Unmarshal(b, &cred); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableSession, s.path, err)
	}
	if cred.AccessToken == "" {
		return nil, nil
	}
	return &cred, nil
}

// Save writes through a temporary file so a crash never leaves a torn file.
func (s *FileStore) Save(cred *Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	b, err := yaml.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
