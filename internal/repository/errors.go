// Package repository defines sentinel error values that are reused
// across multiple repositories.  Handlers use these to map failure
// scenarios onto HTTP responses: not-found variants become 404,
// ErrAllocationExhausted a retryable 503.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrDuplicate signals a unique-key violation on insert.  Check-in
// retries on it: concurrent requests can derive the same token sequence
// or line position, and the unique keys on queue_entries surface the
// race as this error.
var ErrDuplicate = errors.New("duplicate key")

// ErrAllocationExhausted is returned when the token/position retry
// budget is spent without a successful insert.  The request failed but
// may be retried by the caller.
var ErrAllocationExhausted = errors.New("token allocation exhausted")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}

// IsSerializationFailure reports whether err is an InnoDB deadlock or
// lock-wait timeout (error numbers 1213 and 1205).  The day-scoped
// locking reads take gap locks on an empty or sparse day, and gap locks
// are mutually compatible: two concurrent check-ins can both hold them
// until each INSERT blocks on the other's gap, at which point InnoDB
// kills one transaction with 1213.  The loser retries like any other
// lost race.
func IsSerializationFailure(err error) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) {
        return false
    }
    return me.Number == 1213 || me.Number == 1205
}
