package store

import (
	"context"
	"fmt"

	"github.com/ArtekArtek/fiddle/internal/model"
	"github.com/ArtekArtek/fiddle/internal/version"
	"github.com/ArtekArtek/fiddle/pkg/logger"
)

// SetVersions seeds the registry with the known release tags, all in the
// unknown state. Any previous registry content is replaced.
func (s *Store) SetVersions(tags []string) {
	versions := make([]model.Version, 0, len(tags))
	for _, tag := range tags {
		versions = append(versions, model.Version{TagName: tag, State: model.StateUnknown})
	}

	s.mu.Lock()
	s.versions = version.ToRecord(versions)
	s.mu.Unlock()

	s.notifyChange()
}

// MergeVersions adds newly published release tags to the registry. Existing
// entries keep their install state; versions no longer listed upstream stay
// in the registry.
func (s *Store) MergeVersions(tags []string) {
	s.mu.Lock()
	next := copyRegistry(s.versions)
	for _, tag := range tags {
		key := version.Normalize(tag)
		if _, exists := next[key]; exists {
			continue
		}
		next[key] = model.Version{TagName: key, State: model.StateUnknown}
	}
	s.versions = next
	s.mu.Unlock()

	s.notifyChange()
}

// RefreshVersions fetches the current release list, merges it into the
// registry, and recomputes the ready set. Without a release collaborator it
// is a no-op.
func (s *Store) RefreshVersions(ctx context.Context) error {
	s.mu.RLock()
	releases := s.releases
	s.mu.RUnlock()
	if releases == nil {
		return nil
	}

	tags, err := releases.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("refresh versions: %w", err)
	}

	s.MergeVersions(tags)
	return s.UpdateDownloadedVersionState(ctx)
}

// SetVersion switches the selected runtime. The input is normalized and set
// as current, type definitions refresh for the new version, then the binary
// is ensured via DownloadVersion. The selection is not rolled back when a
// later step fails; the error returns to the caller.
func (s *Store) SetVersion(ctx context.Context, input string) error {
	ver := version.Normalize(input)
	logger.Infof("switching to runtime %s", ver)

	s.mu.Lock()
	s.current = ver
	s.mu.Unlock()
	s.notifyChange()

	s.refreshTypedefs(ctx, ver)

	return s.DownloadVersion(ctx, ver)
}

// DownloadVersion ensures the version is downloaded. A version already in
// the ready state is left alone; otherwise it is marked downloading, the
// binary manager installs it, and the ready set is recomputed from the
// manager's list. A failed install resets the entry to unknown and the
// error returns to the caller.
func (s *Store) DownloadVersion(ctx context.Context, input string) error {
	ver := version.Normalize(input)

	s.mu.RLock()
	entry, exists := s.versions[ver]
	s.mu.RUnlock()
	if exists && entry.State.IsReady() {
		logger.Debugf("runtime %s is already downloaded", ver)
		return nil
	}

	logger.Infof("downloading runtime %s", ver)
	s.setVersionState(ver, model.StateDownloading)

	if err := s.manager.Setup(ctx, ver); err != nil {
		s.setVersionState(ver, model.StateUnknown)
		return fmt.Errorf("download runtime %s: %w", ver, err)
	}

	return s.UpdateDownloadedVersionState(ctx)
}

// RemoveVersion deletes the local install of a ready version and resets its
// state. Removing a version that is not ready leaves the registry unchanged.
func (s *Store) RemoveVersion(ctx context.Context, input string) error {
	ver := version.Normalize(input)

	s.mu.RLock()
	entry, exists := s.versions[ver]
	s.mu.RUnlock()
	if !exists || !entry.State.IsReady() {
		logger.Debugf("runtime %s is not downloaded, nothing to remove", ver)
		return nil
	}

	logger.Infof("removing runtime %s", ver)
	if err := s.manager.Remove(ctx, ver); err != nil {
		return fmt.Errorf("remove runtime %s: %w", ver, err)
	}

	s.setVersionState(ver, model.StateUnknown)
	return s.UpdateDownloadedVersionState(ctx)
}

// UpdateDownloadedVersionState marks every registry entry present in the
// binary manager's list as ready. Entries absent from the list keep their
// state; only the download and remove actions reset it.
func (s *Store) UpdateDownloadedVersionState(ctx context.Context) error {
	downloaded, err := s.manager.Downloaded(ctx)
	if err != nil {
		return fmt.Errorf("list downloaded runtimes: %w", err)
	}

	s.mu.Lock()
	next := copyRegistry(s.versions)
	for _, ver := range downloaded {
		key := version.Normalize(ver)
		entry, exists := next[key]
		if !exists {
			continue
		}
		entry.State = model.StateReady
		next[key] = entry
	}
	s.versions = next
	s.mu.Unlock()

	s.notifyChange()
	return nil
}

// setVersionState publishes a registry update for one version, creating the
// entry when missing.
func (s *Store) setVersionState(ver string, state model.InstallState) {
	s.mu.Lock()
	next := copyRegistry(s.versions)
	next[ver] = model.Version{TagName: ver, State: state}
	s.versions = next
	s.mu.Unlock()

	s.notifyChange()
}

// refreshTypedefs updates editor type definitions for the version. Failures
// surface in the console output, never as action errors.
func (s *Store) refreshTypedefs(ctx context.Context, ver string) {
	s.mu.RLock()
	refresher := s.typedefs
	s.mu.RUnlock()
	if refresher == nil {
		return
	}

	if err := refresher.Refresh(ctx, ver); err != nil {
		logger.Warnf("type definitions refresh for %s failed: %v", ver, err)
		s.PushError("Failed to refresh type definitions", err)
	}
}
