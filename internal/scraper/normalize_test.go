package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_AllDefaults(t *testing.T) {
	t.Parallel()

	browser, run := Normalize(CrawlRequest{URL: "https://example.com"})

	require.Equal(t, BrowserConfig{
		Verbose:  true,
		Headless: false,
		TextMode: true,
	}, browser)

	require.Equal(t, "bypass", run.CacheMode)
	require.True(t, run.Verbose)
	require.Equal(t, "load", run.WaitUntil)
	require.True(t, run.OnlyText)
	require.Equal(t, DefaultExcludedTags, run.ExcludedTags)
	require.True(t, run.ExcludeExternalLinks)
	require.True(t, run.ExcludeSocialMediaLinks)
	require.True(t, run.ExcludeExternalImages)
	require.True(t, run.RemoveOverlayElements)
	require.Equal(t, 180000, run.PageTimeoutMs)

	require.Equal(t, ContentFilterConfig{
		Threshold:        0.9,
		ThresholdType:    "dynamic",
		MinWordThreshold: 50,
	}, run.ContentFilter)

	require.Equal(t, MarkdownGeneratorConfig{
		IgnoreLinks:  true,
		IgnoreImages: true,
		EscapeHTML:   true,
	}, run.MarkdownGenerator)
}

func TestNormalize_PartialOverrides(t *testing.T) {
	t.Parallel()

	browser, run := Normalize(CrawlRequest{
		URL: "https://example.com",
		BrowserConfig: map[string]any{
			"headless": true,
		},
		CrawlerConfig: map[string]any{
			"wait_until":   "domcontentloaded",
			"page_timeout": float64(30000), // JSON numbers decode as float64
			"content_filter": map[string]any{
				"threshold_type": "fixed",
			},
		},
	})

	// Overridden fields apply; everything else keeps its default.
	require.True(t, browser.Headless)
	require.True(t, browser.Verbose)
	require.Equal(t, "domcontentloaded", run.WaitUntil)
	require.Equal(t, 30000, run.PageTimeoutMs)
	require.Equal(t, "fixed", run.ContentFilter.ThresholdType)
	require.Equal(t, 0.9, run.ContentFilter.Threshold)
	require.Equal(t, 50, run.ContentFilter.MinWordThreshold)
	require.True(t, run.MarkdownGenerator.IgnoreLinks)
}

func TestNormalize_LooseValueCoercion(t *testing.T) {
	t.Parallel()

	browser, run := Normalize(CrawlRequest{
		URL: "https://example.com",
		BrowserConfig: map[string]any{
			"verbose": "false",
			"headless": 1,
		},
		CrawlerConfig: map[string]any{
			"excluded_tags": []any{"script", "style"},
			"content_filter": map[string]any{
				"threshold":          "0.5",
				"min_word_threshold": float64(10),
			},
			"markdown_generator": map[string]any{
				"ignore_links": false,
			},
		},
	})

	require.False(t, browser.Verbose)
	require.True(t, browser.Headless)
	require.Equal(t, []string{"script", "style"}, run.ExcludedTags)
	require.Equal(t, 0.5, run.ContentFilter.Threshold)
	require.Equal(t, 10, run.ContentFilter.MinWordThreshold)
	require.False(t, run.MarkdownGenerator.IgnoreLinks)
	require.True(t, run.MarkdownGenerator.IgnoreImages)
}

func TestNormalize_InvalidThresholdTypeFallsBack(t *testing.T) {
	t.Parallel()

	_, run := Normalize(CrawlRequest{
		URL: "https://example.com",
		CrawlerConfig: map[string]any{
			"content_filter": map[string]any{
				"threshold_type": "bogus",
			},
		},
	})

	require.Equal(t, "dynamic", run.ContentFilter.ThresholdType)
}

func TestNormalize_NilSubSectionsYieldDefaults(t *testing.T) {
	t.Parallel()

	_, run := Normalize(CrawlRequest{
		URL: "https://example.com",
		CrawlerConfig: map[string]any{
			"content_filter":     nil,
			"markdown_generator": nil,
		},
	})

	require.Equal(t, 0.9, run.ContentFilter.Threshold)
	require.True(t, run.MarkdownGenerator.EscapeHTML)
}
