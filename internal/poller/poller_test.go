package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunsingh/query-tool-statuspage/internal/status"
)

// fetcherFunc adapts a function to the [Fetcher] interface.
type fetcherFunc func(ctx context.Context, endpoint string) (status.Record, error)

func (f fetcherFunc) Fetch(ctx context.Context, endpoint string) (status.Record, error) {
	return f(ctx, endpoint)
}

// recordingSink collects added records for assertions.
type recordingSink struct {
	mu      sync.Mutex
	records []status.Record
}

func (s *recordingSink) Add(rec status.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *recordingSink) all() []status.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]status.Record(nil), s.records...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_EveryEndpointReachesOutcome(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, endpoint string) (status.Record, error) {
		return status.Record{Application: endpoint, Version: "1.0", RequestCount: 1, SuccessCount: 1}, nil
	})

	sink := &recordingSink{}
	p := New(fetcher, sink, 4, discardLogger())

	endpoints := []string{"a", "b", "c", "d", "e", "f", "g"}
	p.Run(context.Background(), endpoints)

	assert.Len(t, sink.all(), len(endpoints))
}

func TestRun_FailureDoesNotBlockSiblings(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := fetcherFunc(func(ctx context.Context, endpoint string) (status.Record, error) {
		if endpoint == "bad" {
			return status.Record{}, fetchErr
		}
		return status.Record{Application: endpoint, Version: "1.0", RequestCount: 1, SuccessCount: 1}, nil
	})

	sink := &recordingSink{}
	p := New(fetcher, sink, 2, discardLogger())

	p.Run(context.Background(), []string{"good1", "bad", "good2"})

	records := sink.all()
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.NotEqual(t, "bad", rec.Application)
	}
}

func TestRun_RespectsConcurrencyLimit(t *testing.T) {
	const limit = 3

	var inFlight, peak atomic.Int32
	fetcher := fetcherFunc(func(ctx context.Context, endpoint string) (status.Record, error) {
		current := inFlight.Add(1)
		defer inFlight.Add(-1)

		// record the high-water mark of simultaneous fetches
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		return status.Record{Application: "App1", Version: "1.0"}, nil
	})

	sink := &recordingSink{}
	p := New(fetcher, sink, limit, discardLogger())

	endpoints := make([]string, 20)
	for i := range endpoints {
		endpoints[i] = "ep"
	}
	p.Run(context.Background(), endpoints)

	assert.LessOrEqual(t, peak.Load(), int32(limit))
	assert.Len(t, sink.all(), len(endpoints))
}

func TestNew_FloorsConcurrencyAtOne(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, endpoint string) (status.Record, error) {
		return status.Record{Application: endpoint}, nil
	})

	sink := &recordingSink{}
	p := New(fetcher, sink, 0, discardLogger())

	// must still make progress with a nonsense limit
	p.Run(context.Background(), []string{"a", "b"})
	assert.Len(t, sink.all(), 2)
}

func TestRun_NoEndpoints(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context, endpoint string) (status.Record, error) {
		t.Fatal("fetch should not be called")
		return status.Record{}, nil
	})

	p := New(fetcher, &recordingSink{}, 5, discardLogger())
	p.Run(context.Background(), nil)
}
