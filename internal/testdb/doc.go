// Package testdb provides database helpers for tests.
//
// OpenSQLite returns a migrated in-memory database and needs no external
// services. OpenPostgres connects to the database named by DATABASE_URL (or
// SCRY_TEST_DB_URL) and skips the test when neither is set. WithTx runs a
// test body inside a transaction that is always rolled back.
package testdb
