// Package postgres implements the internal/store interfaces on PostgreSQL
// through the pgx database/sql driver.
package postgres
