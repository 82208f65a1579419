// Package export writes document snapshots as JSON files or SQLite
// databases. Binary arrays are identified by their BLAKE3 digest.
package export
