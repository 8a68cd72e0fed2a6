package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ArtekArtek/fiddle/internal/binaries"
	"github.com/ArtekArtek/fiddle/internal/model"
	"github.com/ArtekArtek/fiddle/internal/output"
	"github.com/ArtekArtek/fiddle/internal/storage"
	"github.com/ArtekArtek/fiddle/internal/typedefs"
)

// ReleaseLister supplies the current upstream release list.
type ReleaseLister interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Store is the application-state store.
type Store struct {
	mu sync.RWMutex

	current  string
	versions map[string]model.Version
	log      []model.OutputEntry
	buffer   *output.Buffer
	user     model.GitHubUser

	consoleShowing    bool
	settingsShowing   bool
	authDialogShowing bool
	tourShowing       bool
	running           bool

	settings storage.Store
	manager  binaries.Manager
	typedefs typedefs.Refresher
	releases ReleaseLister
	onChange func()
}

// New creates a Store over its collaborators. lineBuffered controls console
// line buffering for raw process output.
func New(settings storage.Store, manager binaries.Manager, lineBuffered bool) *Store {
	return &Store{
		versions: make(map[string]model.Version),
		buffer:   output.New(lineBuffered),
		settings: settings,
		manager:  manager,
	}
}

// SetChangeCallback sets the callback fired after every state change.
func (s *Store) SetChangeCallback(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}

// SetTypedefsRefresher sets the editor type-definition collaborator invoked
// on version change.
func (s *Store) SetTypedefsRefresher(refresher typedefs.Refresher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typedefs = refresher
}

// SetReleaseLister sets the release feed collaborator used by RefreshVersions.
func (s *Store) SetReleaseLister(lister ReleaseLister) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases = lister
}

// Hydrate loads the persisted identity fields and the tour sentinel.
// Missing values default to empty rather than failing.
func (s *Store) Hydrate(ctx context.Context) error {
	var user model.GitHubUser
	fields := []struct {
		key    string
		target *string
	}{
		{storage.KeyGitHubToken, &user.Token},
		{storage.KeyGitHubLogin, &user.Login},
		{storage.KeyGitHubName, &user.Name},
		{storage.KeyGitHubAvatar, &user.AvatarURL},
	}
	for _, field := range fields {
		value, err := s.loadKey(ctx, field.key)
		if err != nil {
			return err
		}
		*field.target = value
	}

	sentinel, err := s.loadKey(ctx, storage.KeyHasShownTour)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.tourShowing = sentinel == ""
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// Version returns the currently selected version.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Versions returns a snapshot of the version registry.
func (s *Store) Versions() map[string]model.Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRegistry(s.versions)
}

// VersionEntry returns the registry entry for a version.
func (s *Store) VersionEntry(ver string) (model.Version, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, exists := s.versions[ver]
	return entry, exists
}

// Output returns a snapshot of the console output log.
func (s *Store) Output() []model.OutputEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.OutputEntry(nil), s.log...)
}

// User returns the GitHub identity.
func (s *Store) User() model.GitHubUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ConsoleShowing reports whether the console panel is visible.
func (s *Store) ConsoleShowing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consoleShowing
}

// SettingsShowing reports whether the settings panel is visible.
func (s *Store) SettingsShowing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsShowing
}

// AuthDialogShowing reports whether the auth dialog is visible.
func (s *Store) AuthDialogShowing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authDialogShowing
}

// TourShowing reports whether the welcome tour is visible.
func (s *Store) TourShowing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tourShowing
}

// Running reports whether a fiddle process is running.
func (s *Store) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// loadKey reads a storage key, mapping a missing key to the empty string.
func (s *Store) loadKey(ctx context.Context, key string) (string, error) {
	value, err := s.settings.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

// notifyChange calls the change callback if set, outside the store lock.
func (s *Store) notifyChange() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// copyRegistry clones a registry map; entries are values, so the clone is
// independent of later updates.
func copyRegistry(registry map[string]model.Version) map[string]model.Version {
	out := make(map[string]model.Version, len(registry))
	for key, entry := range registry {
		out[key] = entry
	}
	return out
}
