// Package services orchestrates the user directory: it combines the record
// store, the validator, the query engine and the session tracker into the
// operations the shell exposes. Every mutating call validates first, mutates
// the in-memory collection, then saves; if the save fails the mutation is
// undone and the error returned.
package services
