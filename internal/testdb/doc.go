// Package testdb provides database fixtures for integration tests.
//
// Tests using it are skipped unless the matching environment variable points
// at a reachable server:
//
//	TASKBOARD_TEST_DATABASE_URL  PostgreSQL connection URL
//	TASKBOARD_TEST_MONGO_URL     MongoDB connection URI
package testdb
