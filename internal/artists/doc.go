// Package artists fuzzy-matches user-supplied artist names against the
// local library's artist index. A query either resolves to a single
// confident match or to a short ranked suggestion list for a "did you
// mean" prompt; a miss is a normal outcome, never an error.
package artists
