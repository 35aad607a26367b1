// Package services defines the shared error taxonomy and context annotations
// used across commands and collaborators.
//
// Errors are tagged with sentinel markers so callers can classify failures
// without string matching: validation problems are recoverable and reported
// inline, configuration and not-found problems point at user input, and
// external tool failures propagate as fatal command errors.
package services
