package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/errs"
	"github.com/standingsfeed/standings-service/internal/app/models"
)

// Coordinator is the single point of control for every outbound page fetch.
// Requests are served strictly one at a time in priority order (ties in
// enqueue order), paced by a global and a per-origin minimum interval, and
// deduplicated against identical in-flight requests. Transient failures are
// retried with exponential backoff, requeued at the front of their priority
// band. The coordinator is constructed and injected; it has an explicit
// Start/Stop lifecycle and holds no global state.
type Coordinator struct {
	config config.Fetch
	client PageClient
	logger Logger

	mu      sync.Mutex
	queue   []*task
	pending map[string]*task
	seq     uint64
	started bool
	stopped bool

	// Last dispatch times, global and per origin. Read and written only
	// inside the single processing loop, under mu.
	lastDispatch       time.Time
	lastOriginDispatch map[string]time.Time

	wake     chan struct{}
	stop     chan struct{}
	loopDone chan struct{}
}

func NewCoordinator(config config.Fetch, client PageClient, logger Logger) *Coordinator {
	return &Coordinator{
		config:             config,
		client:             client,
		logger:             logger,
		pending:            make(map[string]*task),
		lastOriginDispatch: make(map[string]time.Time),
		wake:               make(chan struct{}, 1),
		stop:               make(chan struct{}),
		loopDone:           make(chan struct{}),
	}
}

// Start launches the processing loop. It is a no-op when already started.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.loop(ctx)
}

// Stop halts processing and settles every queued task with an error.
// Pending futures never hang.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	started := c.started
	c.mu.Unlock()

	close(c.stop)
	if started {
		<-c.loopDone
	}

	c.mu.Lock()
	remaining := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, t := range remaining {
		c.settle(t, nil, errs.ErrCoordinatorStopped)
	}
}

// Enqueue queues a page fetch and returns a future for its settlement.
// When deduplication is on and an identical request is already pending, the
// existing task's future is returned instead of queueing a second fetch.
// A malformed URL is a permanent error and is surfaced immediately.
func (c *Coordinator) Enqueue(rawURL string, opts Options) (*Future, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue fetch of malformed url %q: %w", rawURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("failed to enqueue fetch of malformed url %q: %w", rawURL, errs.ErrMalformedURL)
	}

	id := taskID(http.MethodGet, rawURL, "")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil, errs.ErrCoordinatorStopped
	}

	if !opts.SkipDedupe {
		if existing, ok := c.pending[id]; ok {
			return &Future{task: existing}, nil
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.config.RequestTimeout
	}

	c.seq++
	t := &task{
		id:         id,
		url:        rawURL,
		origin:     parsed.Scheme + "://" + parsed.Host,
		priority:   opts.Priority,
		callerID:   opts.CallerID,
		timeout:    timeout,
		maxRetries: c.config.MaxRetries,
		seq:        c.seq,
		done:       make(chan struct{}),
	}

	if !opts.SkipDedupe {
		c.pending[id] = t
	}

	c.insert(t)
	c.wakeLoop()

	return &Future{task: t}, nil
}

// Do enqueues a fetch and blocks until it settles or ctx is done. It is the
// synchronous facade most callers want.
func (c *Coordinator) Do(ctx context.Context, rawURL string, opts Options) (*models.FetchResult, error) {
	future, err := c.Enqueue(rawURL, opts)
	if err != nil {
		return nil, err
	}

	return future.Wait(ctx)
}

func (c *Coordinator) loop(ctx context.Context) {
	defer close(c.loopDone)

	for {
		select {
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		now := time.Now()

		c.mu.Lock()
		t, wait := c.popReady(now)
		c.mu.Unlock()

		if t == nil {
			if !c.sleep(ctx, wait) {
				return
			}
			continue
		}

		if delay := c.pacingDelay(t.origin, time.Now()); delay > 0 {
			if !c.sleepFixed(ctx, delay) {
				c.requeue(t)
				return
			}
		}

		c.dispatch(ctx, t)
	}
}

func (c *Coordinator) dispatch(ctx context.Context, t *task) {
	dispatchedAt := time.Now()
	c.mu.Lock()
	c.lastDispatch = dispatchedAt
	c.lastOriginDispatch[t.origin] = dispatchedAt
	c.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, t.timeout)
	result, err := c.client.Fetch(fetchCtx, t.url)
	cancel()

	if ctx.Err() != nil {
		c.settle(t, nil, errs.ErrCoordinatorStopped)
		return
	}

	switch {
	case err == nil && result.StatusCode < 400:
		result.URL = t.url
		result.Retries = t.retries
		c.settle(t, result, nil)

	case err == nil && result.StatusCode < 500:
		// Permanent request error, never retried.
		c.settle(t, nil, errs.NewFetchFailedError(
			fmt.Sprintf("fetch of %s failed with status %d", t.url, result.StatusCode),
			result.StatusCode,
			t.callerID,
		))

	default:
		c.retryOrFail(t, result2status(result), err)
	}
}

// retryOrFail requeues a transiently failed task with exponential backoff,
// or settles it once retries are exhausted.
func (c *Coordinator) retryOrFail(t *task, statusCode int, cause error) {
	if t.retries >= t.maxRetries {
		message := fmt.Sprintf("fetch of %s failed after %d retries", t.url, t.retries)
		if cause != nil {
			message = fmt.Sprintf("%s: %s", message, cause.Error())
		}
		c.settle(t, nil, errs.NewFetchFailedError(message, statusCode, t.callerID))
		return
	}

	backoff := c.config.RetryBaseDelay << t.retries
	t.retries++
	t.retried = true
	t.notBefore = time.Now().Add(backoff)

	c.logger.Warn().
		Str("url", t.url).
		Uint("attempt", t.retries).
		Dur("backoff", backoff).
		Int("status_code", statusCode).
		Msg("requeueing failed fetch")

	c.requeue(t)
}

func (c *Coordinator) requeue(t *task) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		c.settle(t, nil, errs.ErrCoordinatorStopped)
		return
	}
	c.insert(t)
	c.mu.Unlock()

	c.wakeLoop()
}

// insert places t by priority, ties in enqueue order, with retried tasks
// ahead of never-attempted tasks in the same priority band. Caller holds mu.
func (c *Coordinator) insert(t *task) {
	index := len(c.queue)
	for i, queued := range c.queue {
		if queued.priority > t.priority {
			index = i
			break
		}
		if queued.priority == t.priority && t.retried && !queued.retried {
			index = i
			break
		}
	}

	c.queue = append(c.queue, nil)
	copy(c.queue[index+1:], c.queue[index:])
	c.queue[index] = t
}

// popReady removes and returns the first task whose backoff has elapsed.
// When none is ready it returns the time to wait until one is, or zero when
// the queue is empty.
func (c *Coordinator) popReady(now time.Time) (*task, time.Duration) {
	var wait time.Duration
	for i, t := range c.queue {
		if !t.notBefore.After(now) {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return t, 0
		}

		until := t.notBefore.Sub(now)
		if wait == 0 || until < wait {
			wait = until
		}
	}

	return nil, wait
}

// pacingDelay computes how long dispatch must wait to honor both the global
// and the per-origin minimum interval.
func (c *Coordinator) pacingDelay(origin string, now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var delay time.Duration
	if !c.lastDispatch.IsZero() {
		if globalWait := c.config.GlobalMinInterval - now.Sub(c.lastDispatch); globalWait > delay {
			delay = globalWait
		}
	}

	if last, ok := c.lastOriginDispatch[origin]; ok {
		if originWait := c.config.PerOriginMinInterval - now.Sub(last); originWait > delay {
			delay = originWait
		}
	}

	return delay
}

func (c *Coordinator) settle(t *task, result *models.FetchResult, err error) {
	c.mu.Lock()
	if pending, ok := c.pending[t.id]; ok && pending == t {
		delete(c.pending, t.id)
	}
	c.mu.Unlock()

	t.result = result
	t.err = err
	close(t.done)
}

func (c *Coordinator) wakeLoop() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// sleep blocks until woken by a new task, the wait elapses (zero wait means
// no deadline), or the coordinator stops. It reports whether processing
// should continue.
func (c *Coordinator) sleep(ctx context.Context, wait time.Duration) bool {
	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-c.stop:
		return false
	case <-ctx.Done():
		return false
	case <-c.wake:
		return true
	case <-timeout:
		return true
	}
}

// sleepFixed waits out a pacing delay. New enqueues do not cut it short:
// pacing is applied before dispatch and never reorders a task already
// selected for dispatch.
func (c *Coordinator) sleepFixed(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-c.stop:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func result2status(result *models.FetchResult) int {
	if result == nil {
		return 0
	}

	return result.StatusCode
}
