// Package remote queries the streaming catalog API for artists, album
// editions, and track lists. Responses are filtered down to studio albums
// by the queried artist before they reach the grouping engine: singles,
// compilations, live albums, and guest appearances are dropped here.
package remote
