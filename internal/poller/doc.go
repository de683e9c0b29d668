// Package poller drives the concurrent fan-out phase of a status run.
//
// It implements a worker pool: one job per endpoint, at most a configured
// number of fetches in flight, and a join before returning so the caller
// can safely snapshot the aggregate afterwards. Per-endpoint failures are
// logged and skipped; they never abort the batch.
//
// The main components are:
//
//   - [Poller]: the bounded fan-out driver
//   - [Fetcher]: what the poller calls per endpoint
//   - [Sink]: where successful records are delivered
package poller
