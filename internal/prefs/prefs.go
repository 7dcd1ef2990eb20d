// Package prefs handles Kasuwa's durable local records: the theme preference
// and the current-user snapshot. Records are stored in
// ~/.config/kasuwa/prefs.toml. Read failures fall back to defaults and write
// failures are logged and swallowed; nothing in this package raises to the
// caller.
package prefs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/auwalms/kasuwa/internal/market"
)

const (
	defaultPrefsPath = "~/.config/kasuwa/prefs.toml"
	defaultTheme     = "system"
)

// Store reads and writes the preference records at a fixed path.
type Store struct {
	path string
}

// NewStore builds a Store for the given path; empty uses the default.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

type userRecord struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	Username       string `toml:"username"`
	ProfilePicture string `toml:"profile_picture"`
}

type fileRecords struct {
	Theme string      `toml:"theme"`
	User  *userRecord `toml:"user,omitempty"`
}

// Theme returns the persisted theme preference, defaulting to "system".
func (s *Store) Theme() string {
	records := s.load()
	if strings.TrimSpace(records.Theme) == "" {
		return defaultTheme
	}
	return records.Theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) {
	records := s.load()
	records.Theme = theme
	s.save(records)
}

// CurrentUser returns the persisted user snapshot, if any.
func (s *Store) CurrentUser() (market.User, bool) {
	records := s.load()
	if records.User == nil || records.User.ID == "" {
		return market.User{}, false
	}
	return market.User{
		ID:             records.User.ID,
		Name:           records.User.Name,
		Username:       records.User.Username,
		ProfilePicture: records.User.ProfilePicture,
	}, true
}

// SetCurrentUser persists a copy of the authenticated user.
func (s *Store) SetCurrentUser(u market.User) {
	records := s.load()
	records.User = &userRecord{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
	s.save(records)
}

// ClearCurrentUser removes the persisted user record. The theme record is
// left untouched.
func (s *Store) ClearCurrentUser() {
	records := s.load()
	records.User = nil
	s.save(records)
}

func (s *Store) load() fileRecords {
	records := fileRecords{Theme: defaultTheme}

	resolved, err := resolvePath(s.path)
	if err != nil {
		return records
	}

	file, err := os.Open(resolved)
	if err != nil {
		return records // Missing or unreadable: defaults
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return records
	}

	if err := toml.Unmarshal(bytes, &records); err != nil {
		return fileRecords{Theme: defaultTheme} // Corrupt file: defaults
	}
	return records
}

func (s *Store) save(records fileRecords) {
	resolved, err := resolvePath(s.path)
	if err != nil {
		log.Printf("prefs: resolve path: %v", err)
		return
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("prefs: create dir: %v", err)
		return
	}

	bytes, err := toml.Marshal(records)
	if err != nil {
		log.Printf("prefs: marshal: %v", err)
		return
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		log.Printf("prefs: write: %v", err)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
