// Package export writes the albums shown in the table to CSV, JSON, M3U or
// PLS files. Files are written atomically under sanitized names.
package export
