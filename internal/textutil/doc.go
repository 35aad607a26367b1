// Package textutil provides text canonicalization for artist names, album
// titles, and track titles, plus fingerprint-based similarity and filename
// sanitization.
//
// The normalizers are deterministic pure functions used as grouping and
// comparison keys throughout the tool: edition grouping keys off
// NormalizeAlbumTitle, artist matching keys off NormalizeArtist, and bonus
// track trimming keys off NormalizeTrackTitle. All three are idempotent, so
// normalizing an already-normalized string is a no-op.
package textutil
