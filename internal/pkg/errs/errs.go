// Package errs wraps the error library behind the small surface the rest of
// the codebase needs: wrapping with context, and marking an error so it
// answers errors.Is for a sentinel while keeping its original cause.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr as an identity of err. A nil err collapses to the
// mark itself so call sites need no nil guard.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
