package storage

// Package storage provides the durable key/value store behind persisted
// app state: the GitHub identity fields and the tour sentinel. The Bolt
// store backs production use; the memory store backs tests. Values are
// plain strings and an absent key means unset.
