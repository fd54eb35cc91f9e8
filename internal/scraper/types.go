// Package scraper defines the crawl contract shared across subsystems.
package scraper

import "context"

// CrawlRequest is the client-supplied body of POST /crawl. The two config
// sections arrive as loosely-typed maps and are normalized before use.
type CrawlRequest struct {
	URL           string         `json:"url"`
	BrowserConfig map[string]any `json:"browser_config"`
	CrawlerConfig map[string]any `json:"crawler_config"`
}

// BrowserConfig controls how the browser is launched for a crawl. It is
// constant across the retry attempts of a single request.
type BrowserConfig struct {
	Verbose  bool
	Headless bool
	TextMode bool
}

// ContentFilterConfig tunes the pruning content filter applied to the
// rendered DOM before markdown conversion.
type ContentFilterConfig struct {
	Threshold        float64
	ThresholdType    string // "dynamic" or "fixed"
	MinWordThreshold int
}

// MarkdownGeneratorConfig tunes HTML to markdown conversion.
type MarkdownGeneratorConfig struct {
	IgnoreLinks  bool
	IgnoreImages bool
	EscapeHTML   bool
}

// RunConfig aggregates every per-crawl knob handed to the engine.
type RunConfig struct {
	CacheMode               string
	Verbose                 bool
	WaitUntil               string
	OnlyText                bool
	ExcludedTags            []string
	ExcludeExternalLinks    bool
	ExcludeSocialMediaLinks bool
	ExcludeExternalImages   bool
	RemoveOverlayElements   bool
	PageTimeoutMs           int
	ContentFilter           ContentFilterConfig
	MarkdownGenerator       MarkdownGeneratorConfig
}

// CrawlResult is what the engine produces for a single attempt. It is
// never persisted; the mapper turns it into the response payload.
type CrawlResult struct {
	Success      bool
	ErrorMessage string
	StatusCode   int
	Metadata     map[string]any
	RawMarkdown  string
}

// CrawlResponse is the payload returned when a crawl attempt succeeds.
// Metadata fields are `any` so that absent keys serialize as JSON null
// rather than being omitted.
type CrawlResponse struct {
	Success     bool   `json:"success"`
	Title       any    `json:"title"`
	Description any    `json:"description"`
	Type        any    `json:"type"`
	Image       any    `json:"image"`
	URL         any    `json:"url"`
	SiteName    any    `json:"site_name"`
	Author      any    `json:"author"`
	Keywords    any    `json:"keywords"`
	RawMarkdown string `json:"raw_markdown"`
}

// CrawlFailure is the degraded payload returned once every attempt has
// failed. It is still served with HTTP 200; the success flag is the
// contract for distinguishing outcomes.
type CrawlFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Content any    `json:"content"`
}

// Engine abstracts the browser automation backend. Run performs one
// fully scoped crawl attempt: every browser resource it acquires is
// released before it returns, on success and failure alike.
type Engine interface {
	Run(ctx context.Context, url string, browser BrowserConfig, run RunConfig) (CrawlResult, error)
}
