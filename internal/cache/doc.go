// Package cache persists finished translations in SQLite so repeated
// runs over the same material skip the backend entirely.
//
// Entries are keyed by a digest of model, language pair, and source
// text, so switching any of those never serves a stale translation.
// The Backend decorator answers hits locally, forwards only misses, and
// passes backend failures through untouched so retry behavior upstream
// is unaffected.
package cache
