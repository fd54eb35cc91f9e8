// Package headless implements the crawl engine on top of chromedp.
package headless

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/primerlabs/webscraper/internal/scraper"
)

// Config controls engine-wide behavior; per-crawl knobs arrive through
// scraper.BrowserConfig and scraper.RunConfig on each Run call.
type Config struct {
	MaxParallel int
	NavTimeout  time.Duration
}

// Engine runs one fully scoped browser session per call: the browser
// process and tab are created inside Run and torn down on every exit
// path, so attempts never share state.
type Engine struct {
	cfg     Config
	limiter chan struct{}
	logger  *zap.Logger
}

// New creates a chromedp-backed engine.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.MaxParallel < 0 {
		return nil, fmt.Errorf("max parallel must be >= 0")
	}
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 180 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var limiter chan struct{}
	if cfg.MaxParallel > 0 {
		limiter = make(chan struct{}, cfg.MaxParallel)
	}
	return &Engine{cfg: cfg, limiter: limiter, logger: logger}, nil
}

// Run navigates to url in a fresh browser, waits for the configured
// load condition, then extracts metadata and markdown from the rendered
// DOM. A navigation-level HTTP error yields a CrawlResult with
// Success=false; infrastructure problems yield an error.
func (e *Engine) Run(ctx context.Context, url string, browser scraper.BrowserConfig, run scraper.RunConfig) (scraper.CrawlResult, error) {
	if err := e.acquire(ctx); err != nil {
		return scraper.CrawlResult{}, err
	}
	defer e.release()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, e.allocatorOptions(browser, run)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, e.cfg.NavTimeout)
	defer timeoutCancel()

	meta := newResponseMeta()
	chromedp.ListenTarget(taskCtx, meta.captureEvent)

	start := time.Now()
	html, finalURL, err := e.navigate(taskCtx, url, run)
	if err != nil {
		return scraper.CrawlResult{}, err
	}

	status, respURL := meta.snapshot(url, finalURL)
	if status >= http.StatusBadRequest {
		return scraper.CrawlResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("navigation returned %d %s", status, http.StatusText(status)),
			StatusCode:   status,
		}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scraper.CrawlResult{}, fmt.Errorf("parse document: %w", err)
	}

	metadata := extractMetadata(doc)
	pruneDocument(doc, run, respURL)
	markdown, err := renderMarkdown(doc, respURL, run.MarkdownGenerator)
	if err != nil {
		return scraper.CrawlResult{}, fmt.Errorf("render markdown: %w", err)
	}

	if browser.Verbose || run.Verbose {
		e.logger.Info("page rendered",
			zap.String("url", respURL),
			zap.Int("status", status),
			zap.Int("markdown_bytes", len(markdown)),
			zap.Duration("duration", time.Since(start)),
		)
	}

	return scraper.CrawlResult{
		Success:     true,
		StatusCode:  status,
		Metadata:    metadata,
		RawMarkdown: markdown,
	}, nil
}

func (e *Engine) navigate(ctx context.Context, url string, run scraper.RunConfig) (string, string, error) {
	var (
		html     string
		finalURL string
	)
	actions := []chromedp.Action{network.Enable()}
	if run.CacheMode == "" || strings.EqualFold(run.CacheMode, "bypass") {
		actions = append(actions, network.SetCacheDisabled(true))
	}
	actions = append(actions,
		chromedp.Navigate(url),
		waitAction(run.WaitUntil),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err := chromedp.Run(ctx, actions...); err != nil {
		return "", "", fmt.Errorf("chromedp run: %w", err)
	}
	return html, finalURL, nil
}

func (e *Engine) allocatorOptions(browser scraper.BrowserConfig, run scraper.RunConfig) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
	}
	if browser.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	}
	if browser.TextMode || run.OnlyText {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	return opts
}

func waitAction(waitUntil string) chromedp.Action {
	switch strings.ToLower(waitUntil) {
	case "domcontentloaded":
		return chromedp.WaitReady("body", chromedp.ByQuery)
	case "networkidle":
		return chromedp.Tasks{
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(500 * time.Millisecond),
		}
	default: // "load"
		return chromedp.Tasks{
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(250 * time.Millisecond),
		}
	}
}

func (e *Engine) acquire(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}
	select {
	case e.limiter <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("browser slot wait canceled: %w", ctx.Err())
	}
}

func (e *Engine) release() {
	if e.limiter == nil {
		return
	}
	select {
	case <-e.limiter:
	default:
	}
}

// responseMeta captures the document response observed via CDP network
// events while the page loads.
type responseMeta struct {
	mu     sync.RWMutex
	status int
	url    string
}

func newResponseMeta() *responseMeta {
	return &responseMeta{}
}

func (m *responseMeta) captureEvent(ev any) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok || resp.Type != network.ResourceTypeDocument || resp.Response == nil {
		return
	}
	m.mu.Lock()
	m.status = int(resp.Response.Status)
	m.url = resp.Response.URL
	m.mu.Unlock()
}

// snapshot returns the observed status and URL, falling back to 200 and
// the final (or requested) URL when no document response was seen.
func (m *responseMeta) snapshot(requestURL, finalURL string) (int, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	url := m.url
	switch {
	case url != "":
	case finalURL != "":
		url = finalURL
	default:
		url = requestURL
	}

	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return status, url
}
