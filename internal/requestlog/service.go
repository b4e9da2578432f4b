package requestlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"tixmarket/pkg/logger"
	"tixmarket/pkg/metrics"
)

const (
	sinkQueueSize = 256
	sinkTimeout   = 5 * time.Second
)

var errQueueFull = errors.New("sink queue full, entry dropped")

type Service interface {
	// Record stores an entry in the ring and hands it to the sinks
	// asynchronously. It never blocks on a sink.
	Record(ctx context.Context, entry Entry)

	Query(q Query) QueryResult
	Stats() Stats
	// Export returns entries newest first.
	Export(agentOnly bool) []Entry
	Clear(ctx context.Context) error

	// Restore refills the ring from the first sink that can replay entries.
	Restore(ctx context.Context) error
	Close() error
}

type recorder struct {
	ring    *Ring
	sinks   []Sink
	log     *logger.Logger
	metrics *metrics.Registry

	mu     sync.RWMutex
	closed bool
	queue  chan Entry
	wg     sync.WaitGroup
}

func NewService(ring *Ring, sinks []Sink, m *metrics.Registry) Service {
	r := &recorder{
		ring:    ring,
		sinks:   sinks,
		log:     logger.GetDefault(),
		metrics: m,
	}
	if len(sinks) > 0 {
		r.queue = make(chan Entry, sinkQueueSize)
		r.wg.Add(1)
		go r.deliver()
	}
	return r
}

func (r *recorder) Record(ctx context.Context, entry Entry) {
	r.ring.Add(entry)

	if entry.IsAgent {
		r.log.LogAgentRequest(ctx, entry.Method, entry.Path, entry.StatusCode,
			time.Duration(entry.Duration)*time.Millisecond, entry.Headers.UserAgent)
		r.metrics.RecordAgentRequest()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.queue == nil || r.closed {
		return
	}
	select {
	case r.queue <- entry:
	default:
		r.log.LogSinkFailure(ctx, "queue", errQueueFull)
		r.metrics.RecordSinkFailure("queue")
	}
}

func (r *recorder) deliver() {
	defer r.wg.Done()
	for entry := range r.queue {
		for _, sink := range r.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := sink.Write(ctx, entry); err != nil {
				r.log.LogSinkFailure(ctx, sink.Name(), err)
				r.metrics.RecordSinkFailure(sink.Name())
			}
			cancel()
		}
	}
}

func (r *recorder) Query(q Query) QueryResult {
	newest := r.ring.Newest()
	logs := Filter(newest, q)
	return QueryResult{
		Total:    len(newest),
		Filtered: len(logs),
		Logs:     logs,
	}
}

func (r *recorder) Stats() Stats {
	return ComputeStats(r.ring.Chronological())
}

func (r *recorder) Export(agentOnly bool) []Entry {
	newest := r.ring.Newest()
	if !agentOnly {
		return newest
	}
	out := make([]Entry, 0, len(newest))
	for _, e := range newest {
		if e.IsAgent {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) Clear(ctx context.Context) error {
	r.ring.Clear()
	for _, sink := range r.sinks {
		if c, ok := sink.(Clearer); ok {
			if err := c.Clear(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *recorder) Restore(ctx context.Context) error {
	for _, sink := range r.sinks {
		loader, ok := sink.(Loader)
		if !ok {
			continue
		}
		entries, err := loader.Recent(ctx, r.ring.max)
		if err != nil {
			return err
		}
		for _, e := range entries {
			r.ring.Add(e)
		}
		return nil
	}
	return nil
}

// Close drains queued entries into the sinks and closes them.
func (r *recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	if r.queue != nil {
		close(r.queue)
	}
	r.mu.Unlock()

	r.wg.Wait()
	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
