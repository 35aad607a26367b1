// Package catalog decides which of several competing remote editions of an
// album is authoritative. Editions are grouped by normalized title, then each
// group is resolved to a single album that carries the standard edition's
// year and the hi-fi edition's audio, with bonus tracks trimmed.
//
// The package is pure: it never performs I/O. Callers fetch edition records
// and track lists, then feed them through Group, SelectStandard, SelectHiFi,
// and Resolve.
package catalog
