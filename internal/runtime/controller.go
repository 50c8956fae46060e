package runtime

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"grantflow/internal/crawler"
	"grantflow/internal/domain"
)

// Status values for the controller.
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusError   = "error"
)

// CurrentAction describes the action in flight, if any.
type CurrentAction struct {
	Action    string         `json:"action"`
	StartedAt time.Time      `json:"startedAt"`
	Payload   map[string]any `json:"payload"`
}

// LastError describes the most recent action failure.
type LastError struct {
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusReport is the controller's externally visible state.
type StatusReport struct {
	Status        string         `json:"status"`
	CurrentAction *CurrentAction `json:"currentAction"`
	LastError     *LastError     `json:"lastError"`
}

type actionResult struct {
	message string
	data    map[string]any
}

// Controller executes admin automation actions one at a time and records
// every attempt in the action log. A second Execute while one is running
// fails fast with ErrRuntimeBusy rather than queueing.
type Controller struct {
	mu            sync.Mutex
	logStore      *ActionLog
	localFunding  *crawler.LocalFunding
	status        string
	currentAction *CurrentAction
	lastError     *LastError
}

// NewController wires a runtime controller. localFunding may be nil; the
// crawl action then runs in simulation only.
func NewController(logStore *ActionLog, localFunding *crawler.LocalFunding) *Controller {
	return &Controller{
		logStore:     logStore,
		localFunding: localFunding,
		status:       StatusIdle,
	}
}

// Status returns the controller's current state.
func (c *Controller) Status() StatusReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StatusReport{
		Status:        c.status,
		CurrentAction: c.currentAction,
		LastError:     c.lastError,
	}
}

// Execute runs one action synchronously and returns its completion log
// entry.
func (c *Controller) Execute(ctx context.Context, action, actor string, payload map[string]any) (*LogEntry, error) {
	if action == "" {
		return nil, domain.ErrUnsupportedAction
	}
	if payload == nil {
		payload = map[string]any{}
	}

	c.mu.Lock()
	if c.status == StatusRunning {
		c.mu.Unlock()
		return nil, domain.ErrRuntimeBusy
	}
	startedAt := time.Now().UTC()
	c.status = StatusRunning
	c.currentAction = &CurrentAction{Action: action, StartedAt: startedAt, Payload: payload}
	c.lastError = nil
	c.mu.Unlock()

	c.append(LogEntry{
		ID:        uuid.NewString(),
		Timestamp: startedAt,
		Actor:     actor,
		Action:    action,
		Input:     payload,
		Status:    "started",
		Message:   action + " requested",
	})

	result, err := c.run(ctx, action, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentAction = nil

	if err != nil {
		failedAt := time.Now().UTC()
		c.status = StatusError
		c.lastError = &LastError{Message: err.Error(), OccurredAt: failedAt}
		c.append(LogEntry{
			ID:        uuid.NewString(),
			Timestamp: failedAt,
			Actor:     actor,
			Action:    action,
			Input:     payload,
			Status:    "failed",
			Message:   err.Error(),
		})
		return nil, err
	}

	c.status = StatusIdle
	entry := LogEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
		Input:     payload,
		Status:    "completed",
		Message:   result.message,
		Data:      result.data,
	}
	c.append(entry)
	return &entry, nil
}

// RecentLog returns up to limit action log entries, newest first.
func (c *Controller) RecentLog(limit int) ([]LogEntry, error) {
	return c.logStore.Recent(limit)
}

func (c *Controller) run(ctx context.Context, action string, payload map[string]any) (actionResult, error) {
	switch action {
	case "scan":
		return c.runScan(ctx, payload)
	case "crawl":
		return c.runCrawl(ctx, payload)
	case "explain":
		return c.runExplain(ctx, payload)
	default:
		return actionResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, action)
	}
}

func (c *Controller) runScan(ctx context.Context, payload map[string]any) (actionResult, error) {
	target := stringOr(payload, "target", "repository")
	approve := boolOr(payload, "approve")
	autoFix := boolOr(payload, "autoFix")

	if autoFix && !approve {
		return actionResult{}, fmt.Errorf("auto-fix requested without explicit admin approval, action cancelled")
	}

	if err := sleep(ctx, 600*time.Millisecond); err != nil {
		return actionResult{}, err
	}

	message := fmt.Sprintf("Scan of %s completed", target)
	if autoFix {
		message += " with approved remediations"
	}
	return actionResult{
		message: message,
		data: map[string]any{
			"target":         target,
			"issuesFound":    rand.Intn(6),
			"autoFixApplied": autoFix && approve,
		},
	}, nil
}

func (c *Controller) runCrawl(ctx context.Context, payload map[string]any) (actionResult, error) {
	scope := stringOr(payload, "scope", "default-datasets")

	if c.localFunding == nil {
		if err := sleep(ctx, 800*time.Millisecond); err != nil {
			return actionResult{}, err
		}
		return actionResult{
			message: fmt.Sprintf("Crawl of %s completed", scope),
			data:    map[string]any{"scope": scope, "recordsDiscovered": 0},
		}, nil
	}

	states := stringSlice(payload, "states")
	limit := intOr(payload, "limit", 100)
	result := c.localFunding.Crawl(ctx, states, limit)

	return actionResult{
		message: fmt.Sprintf("Crawl of %s completed", scope),
		data: map[string]any{
			"scope":             scope,
			"recordsDiscovered": result.OpportunitiesFound,
			"statesCompleted":   result.Completed,
			"errors":            result.Errors,
		},
	}, nil
}

func (c *Controller) runExplain(ctx context.Context, payload map[string]any) (actionResult, error) {
	explainCtx := stringOr(payload, "context", "latest-scan")
	if err := sleep(ctx, 400*time.Millisecond); err != nil {
		return actionResult{}, err
	}
	return actionResult{
		message: "Explanation generated",
		data: map[string]any{
			"context": explainCtx,
			"summary": fmt.Sprintf("Generated an explanation for %s.", explainCtx),
		},
	}, nil
}

func (c *Controller) append(entry LogEntry) {
	if err := c.logStore.Append(entry); err != nil {
		log.Printf("runtime.Controller: action log append failed: %v", err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func stringOr(payload map[string]any, key, fallback string) string {
	if s, ok := payload[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolOr(payload map[string]any, key string) bool {
	b, _ := payload[key].(bool)
	return b
}

func intOr(payload map[string]any, key string, fallback int) int {
	switch n := payload[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return fallback
}

func stringSlice(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
