package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/campusrooms/booking-client/internal/core/ports"
)

// File persists the session as a JSON file, the desktop analogue of a mobile
// device's local storage. A missing file reads as an empty session.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

type fileSession struct {
	Token  string `json:"token"`
	UserID string `json:"user_id,omitempty"`
}

func (f *File) Load(context.Context) (ports.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.Session{}, nil
	}
	if err != nil {
		return ports.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var stored fileSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return ports.Session{}, fmt.Errorf("decode session file: %w", err)
	}
	return ports.Session{Token: stored.Token, UserID: stored.UserID}, nil
}

func (f *File) Save(_ context.Context, sess ports.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(fileSession{Token: sess.Token, UserID: sess.UserID})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated file behind.
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
