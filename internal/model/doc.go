// Package model defines the core data types for album-table.
//
// # Album
//
// Album is the single record type of the application. It is produced by the
// itunes package from the Search API response and consumed by the present
// package, which turns each album into a row of display cells:
//
//	albums, err := client.Search(ctx, itunes.Query{Term: "michael jackson"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, album := range albums {
//	    fmt.Printf("%s (%d tracks)\n", album, album.TrackCount)
//	}
//
// # Artwork
//
// iTunes returns a 100x100 artwork URL. LargeArtworkURL rewrites it to any
// square size, which the artwork package uses for the detail pane.
package model
