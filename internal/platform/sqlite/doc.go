// Package sqlite implements the internal/store interfaces on an embedded
// SQLite database using the pure-Go modernc.org/sqlite driver. It backs
// single-user local deployments and the integration tests.
//
// Timestamps are stored as fixed-width UTC text so that they sort
// lexically; scheduling dates are stored as YYYY-MM-DD.
package sqlite
