package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key is missing.
var ErrNotFound = errors.New("key not found")

// ErrClosed indicates the store was used after Close.
var ErrClosed = errors.New("store is closed")

// Persisted key constants
const (
	// KeyGitHubToken holds the GitHub access token
	KeyGitHubToken = "github-token"

	// KeyGitHubLogin holds the GitHub login handle
	KeyGitHubLogin = "github-login"

	// KeyGitHubName holds the GitHub display name
	KeyGitHubName = "github-name"

	// KeyGitHubAvatar holds the GitHub avatar URL
	KeyGitHubAvatar = "github-avatar"

	// KeyHasShownTour records that the welcome tour was shown
	KeyHasShownTour = "has-shown-tour"
)

// Store persists string values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
