// Package models defines the persisted entities of the campus events store.
//
//   - [User] : an account row; the password is only ever held as a bcrypt hash
//   - [Event] : an event listing row
//   - [EventInput] : caller-supplied event fields before defaults and coercion are applied
//
// Struct tags map rows with sqlx (`db`) and render them for the CLI (`json`).
package models
