package poller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arunsingh/query-tool-statuspage/internal/status"
)

// Fetcher retrieves one endpoint's status record.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (status.Record, error)
}

// Sink receives every successfully fetched record. Implementations must be
// safe for concurrent calls; records arrive from multiple workers at once.
type Sink interface {
	Add(rec status.Record)
}

// Poller fans a single status run out across a set of endpoints with a
// bounded number of in-flight fetches.
type Poller struct {
	fetcher        Fetcher
	sink           Sink
	maxConcurrency int
	logger         *slog.Logger
}

// New creates a [Poller]. A maxConcurrency below 1 is floored at 1 so the
// run can always make progress.
func New(fetcher Fetcher, sink Sink, maxConcurrency int, logger *slog.Logger) *Poller {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Poller{
		fetcher:        fetcher,
		sink:           sink,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// Run fetches every endpoint exactly once and returns after all of them
// have reached a terminal outcome.
//
// Endpoints are worked by a pool of at most maxConcurrency workers, so no
// more than that many fetches are in flight at any instant. A successful
// fetch is handed to the sink; a failed one is logged with its endpoint
// and cause, then skipped. One endpoint failing or timing out never
// cancels its siblings, and no ordering is guaranteed between endpoints.
func (p *Poller) Run(ctx context.Context, endpoints []string) {
	if len(endpoints) == 0 {
		return
	}

	jobs := make(chan string, len(endpoints))

	workers := p.maxConcurrency
	if len(endpoints) < workers {
		workers = len(endpoints)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for endpoint := range jobs {
				rec, err := p.fetcher.Fetch(ctx, endpoint)
				if err != nil {
					p.logger.Warn("endpoint skipped",
						"endpoint", endpoint,
						"error", err,
					)
					continue
				}
				p.sink.Add(rec)
			}
		}()
	}

	// buffered to len(endpoints), so enqueueing never blocks
	for _, endpoint := range endpoints {
		jobs <- endpoint
	}
	close(jobs)

	wg.Wait()
}
