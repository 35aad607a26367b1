// Package main hosts the tonearm CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces library scanning, remote album
// discovery, downloads, and the stage/shelve graduation workflows. It
// centralizes configuration resolution and logger setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
