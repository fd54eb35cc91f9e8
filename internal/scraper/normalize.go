package scraper

import "github.com/spf13/cast"

// Defaults applied by Normalize when the client omits a field.
const (
	DefaultVerbose          = true
	DefaultHeadless         = false
	DefaultTextMode         = true
	DefaultThreshold        = 0.9
	DefaultThresholdType    = "dynamic"
	DefaultMinWordThreshold = 50
	DefaultCacheMode        = "bypass"
	DefaultWaitUntil        = "load"
	DefaultPageTimeoutMs    = 180000
)

// DefaultExcludedTags lists the HTML tags stripped from the DOM unless
// the client supplies its own set.
var DefaultExcludedTags = []string{
	"form", "nav", "footer", "header", "aside", "script", "style", "iframe",
}

// Normalize maps the loosely-typed request config sections into the
// strongly-typed structures the engine expects. Defaulting is total and
// per-field: a nil or partial section, including the content_filter and
// markdown_generator sub-sections, yields the documented defaults.
// Unknown keys are ignored and values are coerced leniently, so a JSON
// number arriving as float64 still fills an int field.
func Normalize(req CrawlRequest) (BrowserConfig, RunConfig) {
	bc := req.BrowserConfig
	browser := BrowserConfig{
		Verbose:  boolValue(bc, "verbose", DefaultVerbose),
		Headless: boolValue(bc, "headless", DefaultHeadless),
		TextMode: boolValue(bc, "text_mode", DefaultTextMode),
	}

	cc := req.CrawlerConfig
	run := RunConfig{
		CacheMode:               stringValue(cc, "cache_mode", DefaultCacheMode),
		Verbose:                 boolValue(cc, "verbose", true),
		WaitUntil:               stringValue(cc, "wait_until", DefaultWaitUntil),
		OnlyText:                boolValue(cc, "only_text", true),
		ExcludedTags:            stringSliceValue(cc, "excluded_tags", DefaultExcludedTags),
		ExcludeExternalLinks:    boolValue(cc, "exclude_external_links", true),
		ExcludeSocialMediaLinks: boolValue(cc, "exclude_social_media_links", true),
		ExcludeExternalImages:   boolValue(cc, "exclude_external_images", true),
		RemoveOverlayElements:   boolValue(cc, "remove_overlay_elements", true),
		PageTimeoutMs:           intValue(cc, "page_timeout", DefaultPageTimeoutMs),
		ContentFilter:           normalizeContentFilter(subMap(cc, "content_filter")),
		MarkdownGenerator:       normalizeMarkdownGenerator(subMap(cc, "markdown_generator")),
	}
	return browser, run
}

func normalizeContentFilter(m map[string]any) ContentFilterConfig {
	cf := ContentFilterConfig{
		Threshold:        floatValue(m, "threshold", DefaultThreshold),
		ThresholdType:    stringValue(m, "threshold_type", DefaultThresholdType),
		MinWordThreshold: intValue(m, "min_word_threshold", DefaultMinWordThreshold),
	}
	if cf.ThresholdType != "fixed" {
		cf.ThresholdType = "dynamic"
	}
	return cf
}

func normalizeMarkdownGenerator(m map[string]any) MarkdownGeneratorConfig {
	return MarkdownGeneratorConfig{
		IgnoreLinks:  boolValue(m, "ignore_links", true),
		IgnoreImages: boolValue(m, "ignore_images", true),
		EscapeHTML:   boolValue(m, "escape_html", true),
	}
}

func subMap(m map[string]any, key string) map[string]any {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	return cast.ToStringMap(v)
}

func boolValue(m map[string]any, key string, def bool) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToBool(v)
}

func intValue(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToInt(v)
}

func floatValue(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToFloat64(v)
}

func stringValue(m map[string]any, key string, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s := cast.ToString(v); s != "" {
		return s
	}
	return def
}

func stringSliceValue(m map[string]any, key string, def []string) []string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToStringSlice(v)
}
