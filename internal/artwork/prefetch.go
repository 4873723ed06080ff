package artwork

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tryp/album-table/internal/model"
)

// Result is the outcome of one prefetched thumbnail.
type Result struct {
	Album     *model.Album
	Thumbnail string
	Err       error
}

// Prefetcher renders thumbnails for many albums concurrently.
type Prefetcher struct {
	svc   *Service
	limit int

	total  atomic.Int32
	done   atomic.Int32
	failed atomic.Int32
}

// NewPrefetcher creates a prefetcher running at most limit downloads at once.
func NewPrefetcher(svc *Service, limit int) *Prefetcher {
	return &Prefetcher{svc: svc, limit: max(1, limit)}
}

// Run fetches thumbnails for every album with artwork. onDone is called
// once per album, from several goroutines at once, and must be safe for
// concurrent use. A failed album is reported through onDone and does not
// stop the others. Run returns the context error if ctx ends first.
func (p *Prefetcher) Run(ctx context.Context, albums []*model.Album, onDone func(Result)) error {
	var pending []*model.Album
	for _, a := range albums {
		if a.HasArtwork() {
			pending = append(pending, a)
		}
	}
	p.total.Store(int32(len(pending)))
	p.done.Store(0)
	p.failed.Store(0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for _, a := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			thumb, err := p.svc.Thumbnail(gctx, a)
			if err != nil {
				p.failed.Add(1)
			}
			p.done.Add(1)
			if onDone != nil {
				onDone(Result{Album: a, Thumbnail: thumb, Err: err})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Progress returns how many albums finished, how many of those failed,
// and the total being fetched.
func (p *Prefetcher) Progress() (done, failed, total int) {
	return int(p.done.Load()), int(p.failed.Load()), int(p.total.Load())
}

// Percent returns the finished fraction in [0, 1].
func (p *Prefetcher) Percent() float64 {
	done, _, total := p.Progress()
	if total == 0 {
		return 1
	}
	return float64(done) / float64(total)
}
