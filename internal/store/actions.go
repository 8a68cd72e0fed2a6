package store

import (
	"context"
	"fmt"

	"github.com/ArtekArtek/fiddle/internal/model"
	"github.com/ArtekArtek/fiddle/internal/storage"
)

// PushOutput appends one line to the console log. Debugger banner noise is
// filtered out; accepted lines are trimmed and timestamped.
func (s *Store) PushOutput(text string) {
	s.mu.Lock()
	entry, ok := s.buffer.Push(text)
	if ok {
		s.log = append(s.log, entry)
	}
	s.mu.Unlock()

	if ok {
		s.notifyChange()
	}
}

// PushRawOutput feeds a raw chunk of process output through the line
// buffer. In line-buffered mode partial lines are held back until their
// CRLF terminator arrives.
func (s *Store) PushRawOutput(data []byte) {
	s.mu.Lock()
	entries := s.buffer.PushRaw(data)
	s.log = append(s.log, entries...)
	s.mu.Unlock()

	if len(entries) > 0 {
		s.notifyChange()
	}
}

// PushError reports a failed operation to the console as a warning line
// followed by the error text.
func (s *Store) PushError(message string, err error) {
	s.PushOutput(fmt.Sprintf("Warning: %s. Error encountered:", message))
	s.PushOutput(err.Error())
}

// ClearConsole drops all console output, including any partial line held by
// the buffer.
func (s *Store) ClearConsole() {
	s.mu.Lock()
	s.log = nil
	s.buffer.Reset()
	s.mu.Unlock()

	s.notifyChange()
}

// SignInGitHub records the signed-in user and persists the identity so it
// survives restarts.
func (s *Store) SignInGitHub(ctx context.Context, user model.GitHubUser) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notifyChange()

	pairs := []struct {
		key   string
		value string
	}{
		{storage.KeyGitHubToken, user.Token},
		{storage.KeyGitHubLogin, user.Login},
		{storage.KeyGitHubName, user.Name},
		{storage.KeyGitHubAvatar, user.AvatarURL},
	}
	for _, pair := range pairs {
		if err := s.settings.Set(ctx, pair.key, pair.value); err != nil {
			return fmt.Errorf("persist %s: %w", pair.key, err)
		}
	}
	return nil
}

// SignOutGitHub forgets the signed-in user and deletes the persisted
// identity.
func (s *Store) SignOutGitHub(ctx context.Context) error {
	s.mu.Lock()
	s.user = model.GitHubUser{}
	s.mu.Unlock()
	s.notifyChange()

	keys := []string{
		storage.KeyGitHubToken,
		storage.KeyGitHubLogin,
		storage.KeyGitHubName,
		storage.KeyGitHubAvatar,
	}
	for _, key := range keys {
		if err := s.settings.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	return nil
}

// ToggleConsole flips the console panel visibility.
func (s *Store) ToggleConsole() {
	s.mu.Lock()
	s.consoleShowing = !s.consoleShowing
	s.mu.Unlock()

	s.notifyChange()
}

// ToggleSettings flips the settings panel visibility.
func (s *Store) ToggleSettings() {
	s.mu.Lock()
	s.settingsShowing = !s.settingsShowing
	s.mu.Unlock()

	s.notifyChange()
}

// ToggleAuthDialog flips the sign-in dialog visibility.
func (s *Store) ToggleAuthDialog() {
	s.mu.Lock()
	s.authDialogShowing = !s.authDialogShowing
	s.mu.Unlock()

	s.notifyChange()
}

// ShowTour starts the interactive tour.
func (s *Store) ShowTour() {
	s.mu.Lock()
	s.tourShowing = true
	s.mu.Unlock()

	s.notifyChange()
}

// DisableTour ends the tour. When it was showing the sentinel is written so
// the tour stays off on later launches; otherwise the sentinel is removed
// so the tour offers itself again.
func (s *Store) DisableTour(ctx context.Context) error {
	s.mu.Lock()
	wasShowing := s.tourShowing
	s.tourShowing = false
	s.mu.Unlock()
	s.notifyChange()

	if wasShowing {
		if err := s.settings.Set(ctx, storage.KeyHasShownTour, "true"); err != nil {
			return fmt.Errorf("persist %s: %w", storage.KeyHasShownTour, err)
		}
		return nil
	}
	if err := s.settings.Delete(ctx, storage.KeyHasShownTour); err != nil {
		return fmt.Errorf("clear %s: %w", storage.KeyHasShownTour, err)
	}
	return nil
}

// SetRunning records whether a fiddle process is currently executing.
func (s *Store) SetRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()

	s.notifyChange()
}
