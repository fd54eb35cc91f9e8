package headless

import (
	"context"
	"errors"

	"github.com/primerlabs/webscraper/internal/scraper"
)

// NoopEngine implements scraper.Engine but always fails, signaling that
// browser automation is unavailable in the current deployment. The
// orchestrator turns its errors into the usual degraded payload.
type NoopEngine struct{}

// NewNoop creates a NoopEngine.
func NewNoop() *NoopEngine {
	return &NoopEngine{}
}

// Run returns an error since no browser is available.
func (NoopEngine) Run(_ context.Context, _ string, _ scraper.BrowserConfig, _ scraper.RunConfig) (scraper.CrawlResult, error) {
	return scraper.CrawlResult{}, errors.New("headless engine not available")
}
