// Package artwork downloads album cover art and renders it as terminal
// thumbnails.
//
// Images are fetched with retries, scaled with a Catmull-Rom kernel and
// drawn with upper half blocks, one terminal cell per two pixels:
//
//	svc := artwork.NewService(httpClient, logger, artwork.DefaultOptions())
//	thumb, err := svc.Thumbnail(ctx, album)
//
// A Prefetcher warms the thumbnails of a whole result set in the
// background with bounded concurrency.
package artwork
