// Package present turns albums into album table rows: a name cell, a
// genre tag, a localized release date, a track count badge and a store
// link.
package present
