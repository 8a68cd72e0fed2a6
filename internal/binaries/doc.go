package binaries

// Package binaries manages locally installed runtime versions: per-version
// install directories, removal, and inventory. The actual payload transfer
// is delegated to a Fetcher so the install bookkeeping stays independent of
// how archives are obtained.
