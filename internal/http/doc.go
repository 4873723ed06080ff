// Package http provides a small HTTP client used by the itunes and artwork
// packages.
//
// The client sets a User-Agent header, applies a timeout, and turns non-200
// responses into *StatusError values so callers can tell rate limiting
// (429) and server errors apart from permanent failures:
//
//	client := http.NewClient(settings.HTTPTimeout(), "")
//
//	body, err := client.Get(ctx, url)
//	if http.IsTemporary(err) {
//	    // retry later
//	}
package http
