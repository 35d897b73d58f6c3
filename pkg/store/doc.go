// Package store holds the single in-memory portfolio document of an editing
// session and exposes the mutation operations the wizard, the preview server
// and tests drive it through.
//
// All operations are synchronous except LoadImage, which converts bytes into
// a data URI on a goroutine and applies exactly one field update once done.
// Loads are keyed by target field: starting a new load for a target cancels
// the previous one, and a stale completion never overwrites a newer request.
package store
