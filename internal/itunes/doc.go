// Package itunes fetches album records from the iTunes Search API.
//
// A search is a single GET request:
//
//	https://itunes.apple.com/search?term=michael+jackson&entity=album
//
// The response is a JSON envelope with a resultCount and a results array.
// The dto subpackage holds the wire types; Client.Search decodes them into
// model.Album values:
//
//	client := itunes.NewClient(httpClient, store, logger)
//	albums, err := client.Search(ctx, itunes.Query{Term: "abba", Limit: 100})
//
// # Caching
//
// When a cache.FileStore is supplied, raw response bodies are stored under
// the SHA-256 of the request URL. The API is rate limited to roughly twenty
// requests per minute, so repeated searches for the same artist are served
// from disk until the entry expires.
package itunes
