package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/standingsfeed/standings-service/internal/app/models"
)

// Options control how a request is queued. The zero value means priority 0,
// the configured default timeout, and deduplication enabled.
type Options struct {
	Priority   int
	CallerID   string
	Timeout    time.Duration
	SkipDedupe bool
}

// Future is the caller's handle on an enqueued request. The task itself is
// owned by the coordinator from enqueue to settlement.
type Future struct {
	task *task
}

// Wait blocks until the request settles or ctx is done.
func (f *Future) Wait(ctx context.Context) (*models.FetchResult, error) {
	select {
	case <-f.task.done:
		return f.task.result, f.task.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type task struct {
	id         string
	url        string
	origin     string
	priority   int
	callerID   string
	timeout    time.Duration
	retries    uint
	maxRetries uint
	seq        uint64
	retried    bool
	notBefore  time.Time

	done   chan struct{}
	result *models.FetchResult
	err    error
}

// taskID derives the deduplication identity from method, url and body.
func taskID(method string, url string, body string) string {
	sum := sha256.Sum256([]byte(method + "|" + url + "|" + body))
	return hex.EncodeToString(sum[:16])
}
