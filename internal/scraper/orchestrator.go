package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/primerlabs/webscraper/internal/metrics"
)

// OrchestratorConfig controls the retry loop.
type OrchestratorConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// Orchestrator drives the engine through a bounded sequence of attempts
// and guarantees exactly one well-formed payload per call, no matter
// how the engine fails.
type Orchestrator struct {
	engine Engine
	cfg    OrchestratorConfig
	logger *zap.Logger
}

// NewOrchestrator constructs an Orchestrator. A zero MaxAttempts falls
// back to 5 and a zero RetryDelay to 5 seconds, matching the service
// contract.
func NewOrchestrator(engine Engine, cfg OrchestratorConfig, logger *zap.Logger) *Orchestrator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{engine: engine, cfg: cfg, logger: logger}
}

// Crawl runs the engine against url until an attempt succeeds or the
// attempt budget is exhausted. It returns either a CrawlResponse or a
// CrawlFailure, both JSON-serializable; engine errors never escape.
//
// Failure handling is uniform: an error from the engine and a result
// carrying Success=false are both retryable attempt failures. Between
// attempts the orchestrator suspends on a timer, so a retrying request
// never stalls its neighbors, and context cancellation aborts both the
// delay and any remaining attempts.
func (o *Orchestrator) Crawl(ctx context.Context, url string, browser BrowserConfig, run RunConfig) any {
	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		attempts = attempt
		res, err := o.runAttempt(ctx, url, browser, run)
		if err == nil && res.Success {
			metrics.ObserveCrawl(url, "success", attempts)
			o.logger.Info("crawl succeeded",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Int("status_code", res.StatusCode),
			)
			return MapResult(res)
		}

		lastErr = attemptError(res, err)
		o.logger.Warn("crawl attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", o.cfg.MaxAttempts),
			zap.Error(lastErr),
		)

		if attempt == o.cfg.MaxAttempts {
			break
		}
		if waitErr := o.wait(ctx); waitErr != nil {
			o.logger.Warn("crawl canceled during retry wait", zap.String("url", url), zap.Error(waitErr))
			break
		}
	}

	metrics.ObserveCrawl(url, "failure", attempts)
	return CrawlFailure{
		Success: false,
		Message: lastErr.Error(),
		Content: nil,
	}
}

// runAttempt scopes a single engine call: the page timeout bounds the
// attempt and the engine releases its session before returning.
func (o *Orchestrator) runAttempt(ctx context.Context, url string, browser BrowserConfig, run RunConfig) (CrawlResult, error) {
	if run.PageTimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(run.PageTimeoutMs)*time.Millisecond)
		defer cancel()
	}
	return o.engine.Run(ctx, url, browser, run)
}

func (o *Orchestrator) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.cfg.RetryDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func attemptError(res CrawlResult, err error) error {
	if err != nil {
		return err
	}
	if res.ErrorMessage == "" {
		return errors.New("engine reported failure without an error message")
	}
	if res.StatusCode != 0 {
		return fmt.Errorf("engine reported failure (status %d): %s", res.StatusCode, res.ErrorMessage)
	}
	return fmt.Errorf("engine reported failure: %s", res.ErrorMessage)
}
