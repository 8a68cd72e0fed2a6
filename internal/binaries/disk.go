package binaries

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ArtekArtek/fiddle/internal/version"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// DiskManager installs runtime versions under a base directory, one
// subdirectory per normalized version.
type DiskManager struct {
	baseDir string
	fetcher Fetcher
}

// NewDiskManager creates a manager rooted at baseDir. Payload transfer is
// delegated to fetcher.
func NewDiskManager(baseDir string, fetcher Fetcher) *DiskManager {
	return &DiskManager{
		baseDir: baseDir,
		fetcher: fetcher,
	}
}

// VersionDir returns the install directory for the version.
func (m *DiskManager) VersionDir(ver string) string {
	return filepath.Join(m.baseDir, version.Normalize(ver))
}

// ExecutablePath resolves the runtime executable for the version.
func (m *DiskManager) ExecutablePath(ver string) string {
	return filepath.Join(m.VersionDir(ver), executableSubpath())
}

// Installed reports whether the version has a complete local install.
func (m *DiskManager) Installed(ver string) bool {
	info, err := os.Stat(m.ExecutablePath(ver))
	return err == nil && !info.IsDir()
}

// Setup ensures the version is installed locally. Installing an already
// present version is a no-op. A failed or incomplete fetch leaves no
// partial install behind.
func (m *DiskManager) Setup(ctx context.Context, ver string) error {
	ver = version.Normalize(ver)
	if !version.IsValid(ver) {
		return fmt.Errorf("invalid version %q", ver)
	}
	if m.Installed(ver) {
		return nil
	}

	dir := m.VersionDir(ver)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return fmt.Errorf("create version directory: %w", err)
	}

	if err := m.fetcher.Fetch(ctx, ver, dir); err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("fetch runtime %s: %w", ver, err)
	}

	if !m.Installed(ver) {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("runtime %s is missing its executable after fetch", ver)
	}
	return nil
}

// Remove deletes the local install of the version. Removing a version that
// is not installed is not an error.
func (m *DiskManager) Remove(ctx context.Context, ver string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ver = version.Normalize(ver)
	if err := os.RemoveAll(m.VersionDir(ver)); err != nil {
		return fmt.Errorf("remove runtime %s: %w", ver, err)
	}
	return nil
}

// Downloaded lists the versions with a complete local install, in directory
// order. Stray files, invalid names, and partial installs are skipped.
func (m *DiskManager) Downloaded(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.baseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read binaries directory: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !version.IsValid(name) || version.Normalize(name) != name {
			continue
		}
		if !m.Installed(name) {
			continue
		}
		versions = append(versions, name)
	}
	return versions, nil
}

// executableSubpath returns the runtime executable location inside a version
// directory for the current platform.
func executableSubpath() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join("Electron.app", "Contents", "MacOS", "Electron")
	case "windows":
		return "electron.exe"
	default:
		return "electron"
	}
}
