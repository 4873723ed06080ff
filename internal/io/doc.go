// Package ioutils provides file system helpers shared by the export, config
// and cli packages.
//
// # File Operations
//
//	// Write data atomically, creating parent directories
//	err := ioutils.WriteFile("/path/to/albums.csv", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to derive export file names from user input:
//
//	safe := ioutils.SanitizeFileName("AC/DC: page 2") // Returns "AC_DC_ page 2"
package ioutils
