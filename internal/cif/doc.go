// Package cif parses CIF 1.1 documents with embedded CBF binary sections
// into an in-memory tree of data blocks, save frames, categories, columns
// and values.
//
// The tree is plain data. Navigation state lives with the caller; this
// package only guarantees that every column of a category holds exactly
// Category.Rows values.
package cif
