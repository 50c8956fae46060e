// Package crawler discovers funding opportunities from external sources.
// Crawls are item-oriented: one item failing never aborts the run.
package crawler

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 1
)

// ItemFunc crawls a single item.
type ItemFunc func(ctx context.Context, item string) (int, error)

// ItemError records one skipped item and why.
type ItemError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// Result summarizes a crawl run.
type Result struct {
	Completed          int         `json:"completed"`
	Total              int         `json:"total"`
	OpportunitiesFound int         `json:"opportunities_found"`
	Errors             []ItemError `json:"errors"`
}

// Runner executes per-item crawls with timeout, retry with backoff, and
// error recovery.
type Runner struct {
	Timeout    time.Duration
	MaxRetries int
}

// NewRunner returns a Runner with default timeout and retry settings.
func NewRunner() *Runner {
	return &Runner{Timeout: defaultTimeout, MaxRetries: defaultMaxRetries}
}

// Run crawls every item, skipping ones that keep failing after retries.
func (r *Runner) Run(ctx context.Context, items []string, crawl ItemFunc) Result {
	result := Result{Total: len(items), Errors: []ItemError{}}

	for _, item := range items {
		found, err := r.withRetry(ctx, item, crawl)
		if err != nil {
			log.Printf("crawler: error on %s, skipping: %v", item, err)
			result.Errors = append(result.Errors, ItemError{Item: item, Error: err.Error()})
		} else {
			result.OpportunitiesFound += found
		}
		result.Completed++
		log.Printf("crawler: completed %d/%d items, %d opportunities found, %d errors (skipped)",
			result.Completed, result.Total, result.OpportunitiesFound, len(result.Errors))
	}
	return result
}

func (r *Runner) withRetry(ctx context.Context, item string, crawl ItemFunc) (int, error) {
	delay := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= r.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("crawler: retry %d for %s after error: %v", attempt, item, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
			if delay *= 2; delay > r.Timeout {
				delay = r.Timeout
			}
		}

		found, err := r.withTimeout(ctx, item, crawl)
		if err == nil {
			return found, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func (r *Runner) withTimeout(ctx context.Context, item string, crawl ItemFunc) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	type outcome struct {
		found int
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{0, fmt.Errorf("crawl %s panicked: %v", item, rec)}
			}
		}()
		found, err := crawl(ctx, item)
		done <- outcome{found, err}
	}()

	select {
	case o := <-done:
		return o.found, o.err
	case <-ctx.Done():
		return 0, fmt.Errorf("crawl %s: %w", item, ctx.Err())
	}
}
