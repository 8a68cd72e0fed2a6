package binaries

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFetcher installs runtime versions from a local distribution tree laid
// out as <root>/<version>/. The version subtree is copied into the target
// directory with file modes preserved.
type CopyFetcher struct {
	root string
}

// NewCopyFetcher creates a fetcher reading from the distribution tree at root.
func NewCopyFetcher(root string) *CopyFetcher {
	return &CopyFetcher{root: root}
}

// Fetch copies the prepared version directory into dir.
func (f *CopyFetcher) Fetch(ctx context.Context, ver, dir string) error {
	src := filepath.Join(f.root, ver)

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("no local runtime for %s: %w", ver, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local runtime for %s is not a directory", ver)
	}

	return copyTree(ctx, src, dir)
}

// copyTree copies src into dst recursively, preserving permission bits.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, DefaultDirPermissions)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
