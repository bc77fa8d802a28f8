// Package store defines the persistence contracts for users and tasks.
// Implementations live under internal/platform (mongo, postgres); the
// services depend only on these interfaces and on the sentinel errors
// declared here.
package store
