// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store, plus the embedded goose migrations
// that create their schema.
//
// Stores take a store.DBTX so they work with either *sql.DB or *sql.Tx.
// The connection is opened with the pgx stdlib driver ("pgx").
package postgres
