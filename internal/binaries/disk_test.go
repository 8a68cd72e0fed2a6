package binaries

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// prepareDist lays out a fake runtime for ver under the distribution root.
func prepareDist(t *testing.T, root, ver string) {
	t.Helper()

	exe := filepath.Join(root, ver, executableSubpath())
	if err := os.MkdirAll(filepath.Dir(exe), 0755); err != nil {
		t.Fatalf("failed to prepare dist tree: %v", err)
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("failed to write fake executable: %v", err)
	}
}

func TestDiskManager_SetupAndDownloaded(t *testing.T) {
	dist := t.TempDir()
	prepareDist(t, dist, "12.0.0")

	fetchCalls := 0
	fetcher := FetcherFunc(func(ctx context.Context, ver, dir string) error {
		fetchCalls++
		return NewCopyFetcher(dist).Fetch(ctx, ver, dir)
	})

	manager := NewDiskManager(t.TempDir(), fetcher)
	ctx := context.Background()

	if err := manager.Setup(ctx, "v12.0.0"); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	if fetchCalls != 1 {
		t.Errorf("expected 1 fetch call, got %d", fetchCalls)
	}
	if !manager.Installed("12.0.0") {
		t.Error("expected version to be installed after Setup")
	}

	// Second setup must be a no-op
	if err := manager.Setup(ctx, "12.0.0"); err != nil {
		t.Fatalf("repeat Setup() failed: %v", err)
	}
	if fetchCalls != 1 {
		t.Errorf("repeat Setup() fetched again: %d calls", fetchCalls)
	}

	versions, err := manager.Downloaded(ctx)
	if err != nil {
		t.Fatalf("Downloaded() failed: %v", err)
	}
	if len(versions) != 1 || versions[0] != "12.0.0" {
		t.Errorf("Downloaded() = %v, expected [12.0.0]", versions)
	}
}

func TestDiskManager_SetupInvalidVersion(t *testing.T) {
	manager := NewDiskManager(t.TempDir(), NewCopyFetcher(t.TempDir()))

	if err := manager.Setup(context.Background(), "not-a-version"); err == nil {
		t.Fatal("expected error for invalid version")
	}
}

func TestDiskManager_SetupFetchError(t *testing.T) {
	fetcher := NewCopyFetcher(t.TempDir()) // empty dist tree
	manager := NewDiskManager(t.TempDir(), fetcher)

	err := manager.Setup(context.Background(), "3.0.0")
	if err == nil {
		t.Fatal("expected error when the fetcher has no payload")
	}

	// No partial install may remain
	if _, statErr := os.Stat(manager.VersionDir("3.0.0")); !os.IsNotExist(statErr) {
		t.Errorf("partial install left behind: %v", statErr)
	}
}

func TestDiskManager_SetupIncompleteFetch(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context, ver, dir string) error {
		// Writes nothing
		return nil
	})
	manager := NewDiskManager(t.TempDir(), fetcher)

	err := manager.Setup(context.Background(), "3.0.0")
	if err == nil {
		t.Fatal("expected error when fetch leaves no executable")
	}
	if _, statErr := os.Stat(manager.VersionDir("3.0.0")); !os.IsNotExist(statErr) {
		t.Error("incomplete install left behind")
	}
}

func TestDiskManager_Remove(t *testing.T) {
	dist := t.TempDir()
	prepareDist(t, dist, "12.0.0")

	manager := NewDiskManager(t.TempDir(), NewCopyFetcher(dist))
	ctx := context.Background()

	if err := manager.Setup(ctx, "12.0.0"); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	if err := manager.Remove(ctx, "v12.0.0"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	versions, err := manager.Downloaded(ctx)
	if err != nil {
		t.Fatalf("Downloaded() failed: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("Downloaded() after remove = %v, expected empty", versions)
	}

	// Removing an absent version is not an error
	if err := manager.Remove(ctx, "99.0.0"); err != nil {
		t.Errorf("Remove() of absent version = %v, expected nil", err)
	}
}

func TestDiskManager_DownloadedSkipsJunk(t *testing.T) {
	base := t.TempDir()
	manager := NewDiskManager(base, NewCopyFetcher(t.TempDir()))

	// Complete install
	prepareDist(t, base, "5.1.0")

	// Stray file, invalid name, partial install
	if err := os.WriteFile(filepath.Join(base, "README"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "not-a-version"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "9.9.9"), 0755); err != nil {
		t.Fatal(err)
	}

	versions, err := manager.Downloaded(context.Background())
	if err != nil {
		t.Fatalf("Downloaded() failed: %v", err)
	}
	if len(versions) != 1 || versions[0] != "5.1.0" {
		t.Errorf("Downloaded() = %v, expected [5.1.0]", versions)
	}
}

func TestDiskManager_DownloadedMissingBase(t *testing.T) {
	manager := NewDiskManager(filepath.Join(t.TempDir(), "never-created"), NewCopyFetcher(t.TempDir()))

	versions, err := manager.Downloaded(context.Background())
	if err != nil {
		t.Fatalf("Downloaded() failed: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("Downloaded() = %v, expected empty", versions)
	}
}
