package store

// Package store holds the central application state: the selected runtime
// version and its registry, the console output log, the persisted GitHub
// identity, and the UI panel flags. Every mutating action writes through to
// durable storage where state is persisted, swaps the version registry
// wholesale instead of mutating it, and fires the registered change
// callback. Blocking work (binary setup, removal, release refresh) runs
// outside the store lock; actions re-check registry state instead of
// holding the lock across those calls.
