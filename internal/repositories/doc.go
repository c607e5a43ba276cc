// Package repositories implements SQLite persistence for accounts and events.
//
// The package-level functions (InsertUser, FindUserByEmail, InsertEvent, ListEvents...) take
// any sqlx executor and are meant to be composed inside one [store.Do] transaction.
//
// [EventRepository] wraps the event functions in queued transactions and returns futures.
// Writes report failures to the caller. Reads fail open: an error is logged and the result
// is empty (or nil for a single event).
//
// Rows are only ever inserted. Ids are assigned by SQLite and strictly increase.
package repositories
