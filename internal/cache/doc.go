// Package cache provides a TTL-based file cache for search API responses.
//
// The iTunes Search API is rate limited, so album-table keeps each decoded
// response body on disk for a configurable time. Entries are JSON files
// named after a SHA-256 key, written atomically through a temp file.
package cache
