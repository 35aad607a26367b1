// Package organizer drives album graduation: staging a download into the
// listening queue, shelving a staged album into its permanent library
// location, and deleting an item from either tier. Destinations follow the
// letter-bucket library layout; dry-run mode reports every transition
// without touching the filesystem.
package organizer
