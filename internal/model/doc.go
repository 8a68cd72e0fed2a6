package model

// Package model defines domain data structures shared across the app: runtime
// versions, install-state enums, console output entries, and the persisted
// GitHub identity. Structures carry no behavior beyond display helpers and
// explicit state checks.
