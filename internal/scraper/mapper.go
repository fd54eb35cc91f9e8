package scraper

// MapResult extracts the response contract from a successful engine
// result. The mapping is total: a metadata key that the page did not
// provide maps to nil, never to an error.
func MapResult(res CrawlResult) CrawlResponse {
	return CrawlResponse{
		Success:     true,
		Title:       metaValue(res.Metadata, "og:title"),
		Description: metaValue(res.Metadata, "og:description"),
		Type:        metaValue(res.Metadata, "og:type"),
		Image:       metaValue(res.Metadata, "og:image"),
		URL:         metaValue(res.Metadata, "og:url"),
		SiteName:    metaValue(res.Metadata, "og:site_name"),
		Author:      metaValue(res.Metadata, "author"),
		Keywords:    metaValue(res.Metadata, "keywords"),
		RawMarkdown: res.RawMarkdown,
	}
}

func metaValue(m map[string]any, key string) any {
	// Indexing a nil map is fine; both paths yield nil for missing keys.
	return m[key]
}
