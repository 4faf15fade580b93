package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/config"
	"github.com/standingsfeed/standings-service/errs"
	"github.com/standingsfeed/standings-service/internal/app/fetch"
	"github.com/standingsfeed/standings-service/internal/app/fetch/mocks"
	"github.com/standingsfeed/standings-service/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubPageClient records dispatch timestamps and URLs; responses are driven
// by the respond function.
type stubPageClient struct {
	mu      sync.Mutex
	calls   []time.Time
	urls    []string
	respond func(call int, url string) (*models.FetchResult, error)
}

func (s *stubPageClient) Fetch(ctx context.Context, url string) (*models.FetchResult, error) {
	s.mu.Lock()
	call := len(s.calls)
	s.calls = append(s.calls, time.Now())
	s.urls = append(s.urls, url)
	respond := s.respond
	s.mu.Unlock()

	if respond != nil {
		return respond(call, url)
	}

	return &models.FetchResult{StatusCode: http.StatusOK, Body: "ok"}, nil
}

func (s *stubPageClient) snapshot() ([]time.Time, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]time.Time(nil), s.calls...), append([]string(nil), s.urls...)
}

func defaultFetchConfig() config.Fetch {
	return config.Fetch{
		GlobalMinInterval:    time.Millisecond,
		PerOriginMinInterval: time.Millisecond,
		MaxRetries:           3,
		RetryBaseDelay:       time.Millisecond,
		RequestTimeout:       time.Second,
	}
}

func newCoordinator(cfg config.Fetch, client fetch.PageClient) *fetch.Coordinator {
	logger := zerolog.Nop()
	return fetch.NewCoordinator(cfg, client, &logger)
}

func TestCoordinator_DispatchesArePaced(t *testing.T) {
	ctx := context.Background()

	cfg := defaultFetchConfig()
	cfg.GlobalMinInterval = 20 * time.Millisecond
	cfg.PerOriginMinInterval = 30 * time.Millisecond

	client := &stubPageClient{}
	c := newCoordinator(cfg, client)
	c.Start(ctx)
	defer c.Stop()

	urls := []string{
		"https://results.example.com/bundesliga",
		"https://results.example.com/laliga",
		"https://results.example.com/seriea",
	}

	futures := make([]*fetch.Future, 0, len(urls))
	for _, url := range urls {
		future, err := c.Enqueue(url, fetch.Options{})
		require.NoError(t, err)
		futures = append(futures, future)
	}

	for _, future := range futures {
		_, err := future.Wait(ctx)
		require.NoError(t, err)
	}

	calls, _ := client.snapshot()
	require.Len(t, calls, 3)
	for i := 1; i < len(calls); i++ {
		assert.GreaterOrEqual(t, calls[i].Sub(calls[i-1]), cfg.PerOriginMinInterval)
	}
}

func TestCoordinator_DedupeSharesOneNetworkCall(t *testing.T) {
	ctx := context.Background()

	release := make(chan struct{})
	client := &stubPageClient{
		respond: func(_ int, _ string) (*models.FetchResult, error) {
			<-release
			return &models.FetchResult{StatusCode: http.StatusOK, Body: "shared"}, nil
		},
	}

	c := newCoordinator(defaultFetchConfig(), client)
	c.Start(ctx)
	defer c.Stop()

	url := "https://results.example.com/em"
	first, err := c.Enqueue(url, fetch.Options{CallerID: "caller-a"})
	require.NoError(t, err)

	// Identical request while the first is still pending.
	second, err := c.Enqueue(url, fetch.Options{CallerID: "caller-b"})
	require.NoError(t, err)

	close(release)

	resultFirst, err := first.Wait(ctx)
	require.NoError(t, err)
	resultSecond, err := second.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "shared", resultFirst.Body)
	assert.Equal(t, resultFirst, resultSecond)

	calls, _ := client.snapshot()
	assert.Len(t, calls, 1)
}

func TestCoordinator_TransientFailuresAreRetried(t *testing.T) {
	ctx := context.Background()

	client := &stubPageClient{
		respond: func(call int, _ string) (*models.FetchResult, error) {
			if call < 2 {
				return &models.FetchResult{StatusCode: http.StatusBadGateway}, nil
			}
			return &models.FetchResult{StatusCode: http.StatusOK, Body: "recovered"}, nil
		},
	}

	c := newCoordinator(defaultFetchConfig(), client)
	c.Start(ctx)
	defer c.Stop()

	future, err := c.Enqueue("https://results.example.com/bundesliga", fetch.Options{})
	require.NoError(t, err)

	result, err := future.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "recovered", result.Body)
	assert.Equal(t, uint(2), result.Retries)

	calls, _ := client.snapshot()
	assert.Len(t, calls, 3)
}

func TestCoordinator_PermanentErrorIsNotRetried(t *testing.T) {
	ctx := context.Background()

	client := &stubPageClient{
		respond: func(_ int, _ string) (*models.FetchResult, error) {
			return &models.FetchResult{StatusCode: http.StatusNotFound}, nil
		},
	}

	c := newCoordinator(defaultFetchConfig(), client)
	c.Start(ctx)
	defer c.Stop()

	future, err := c.Enqueue("https://results.example.com/gone", fetch.Options{CallerID: "bundesliga"})
	require.NoError(t, err)

	_, err = future.Wait(ctx)
	require.Error(t, err)

	var fetchErr errs.FetchFailedError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "bundesliga", fetchErr.LeagueType)

	calls, _ := client.snapshot()
	assert.Len(t, calls, 1)
}

func TestCoordinator_RetriesExhausted(t *testing.T) {
	ctx := context.Background()

	cfg := defaultFetchConfig()
	cfg.MaxRetries = 2

	client := &stubPageClient{
		respond: func(_ int, _ string) (*models.FetchResult, error) {
			return nil, errors.New("connection reset")
		},
	}

	c := newCoordinator(cfg, client)
	c.Start(ctx)
	defer c.Stop()

	future, err := c.Enqueue("https://results.example.com/flaky", fetch.Options{})
	require.NoError(t, err)

	_, err = future.Wait(ctx)
	require.Error(t, err)

	var fetchErr errs.FetchFailedError
	require.True(t, errors.As(err, &fetchErr))

	calls, _ := client.snapshot()
	assert.Len(t, calls, 3)
}

func TestCoordinator_PriorityOrderWithStableTies(t *testing.T) {
	ctx := context.Background()

	client := &stubPageClient{}
	c := newCoordinator(defaultFetchConfig(), client)

	// Enqueue before Start so ordering is decided purely by priority.
	low1, err := c.Enqueue("https://results.example.com/low-first", fetch.Options{Priority: 5})
	require.NoError(t, err)
	high, err := c.Enqueue("https://results.example.com/high", fetch.Options{Priority: 1})
	require.NoError(t, err)
	low2, err := c.Enqueue("https://results.example.com/low-second", fetch.Options{Priority: 5})
	require.NoError(t, err)

	c.Start(ctx)
	defer c.Stop()

	for _, future := range []*fetch.Future{low1, high, low2} {
		_, err := future.Wait(ctx)
		require.NoError(t, err)
	}

	_, urls := client.snapshot()
	require.Len(t, urls, 3)
	assert.Equal(t, "https://results.example.com/high", urls[0])
	assert.Equal(t, "https://results.example.com/low-first", urls[1])
	assert.Equal(t, "https://results.example.com/low-second", urls[2])
}

func TestCoordinator_MalformedURL(t *testing.T) {
	client := mocks.NewPageClient(t)
	c := newCoordinator(defaultFetchConfig(), client)

	_, err := c.Enqueue("results.example.com/no-scheme", fetch.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrMalformedURL))
}

func TestCoordinator_TaskTimeoutIsRetryable(t *testing.T) {
	ctx := context.Background()

	cfg := defaultFetchConfig()
	cfg.MaxRetries = 1

	// The client honors the per-task context deadline the way the real page
	// client does.
	slow := &stubPageClient{
		respond: func(_ int, _ string) (*models.FetchResult, error) {
			return nil, context.DeadlineExceeded
		},
	}

	c := newCoordinator(cfg, slow)
	c.Start(ctx)
	defer c.Stop()

	future, err := c.Enqueue("https://results.example.com/slow", fetch.Options{Timeout: 5 * time.Millisecond})
	require.NoError(t, err)

	_, err = future.Wait(ctx)
	require.Error(t, err)

	calls, _ := slow.snapshot()
	assert.Len(t, calls, 2)
}

func TestCoordinator_StopSettlesQueuedTasks(t *testing.T) {
	ctx := context.Background()

	client := mocks.NewPageClient(t)
	c := newCoordinator(defaultFetchConfig(), client)

	future, err := c.Enqueue("https://results.example.com/pending", fetch.Options{})
	require.NoError(t, err)

	c.Stop()

	_, err = future.Wait(ctx)
	assert.True(t, errors.Is(err, errs.ErrCoordinatorStopped))

	_, err = c.Enqueue("https://results.example.com/late", fetch.Options{})
	assert.True(t, errors.Is(err, errs.ErrCoordinatorStopped))

	client.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}
