// Package store defines the sentinel errors shared by the storage
// backends. The Postgres and Firestore implementations live in
// subpackages; services depend only on the interfaces they declare and on
// these sentinels.
package store

import (
	"errors"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a guarded write lost an optimistic-concurrency
// race: the record's version no longer matches the one the caller read.
var ErrConflict = errors.New("record version conflict")
