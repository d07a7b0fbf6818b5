// Package store defines the persistence interfaces of the service and the
// errors and transaction helpers shared by every implementation. The
// postgres and sqlite packages under internal/platform implement them.
package store
