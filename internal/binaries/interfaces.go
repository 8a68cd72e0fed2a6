package binaries

import "context"

// Manager defines the runtime binary lifecycle used by the app state.
type Manager interface {
	// Setup ensures the version is installed locally. Installing an already
	// present version is a no-op.
	Setup(ctx context.Context, ver string) error

	// Remove deletes the local install of the version.
	Remove(ctx context.Context, ver string) error

	// Downloaded lists the versions with a complete local install.
	Downloaded(ctx context.Context) ([]string, error)

	// ExecutablePath resolves the runtime executable for the version.
	ExecutablePath(ver string) string
}

// Fetcher obtains the runtime payload for a version into dir.
type Fetcher interface {
	Fetch(ctx context.Context, ver, dir string) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, ver, dir string) error

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, ver, dir string) error {
	return f(ctx, ver, dir)
}
