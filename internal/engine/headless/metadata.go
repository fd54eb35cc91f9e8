package headless

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractMetadata pulls page metadata out of the rendered DOM: the
// document title, the standard description/author/keywords meta tags
// and every Open Graph property. Keys the page does not provide are
// simply absent from the map.
func extractMetadata(doc *goquery.Document) map[string]any {
	meta := make(map[string]any)

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta["title"] = title
	}

	doc.Find("meta[name]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(sel.AttrOr("name", "")))
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		if name == "" || content == "" {
			return
		}
		switch name {
		case "description":
			meta["description"] = content
		case "author":
			meta["author"] = content
		case "keywords":
			if kws := splitKeywords(content); len(kws) > 0 {
				meta["keywords"] = kws
			}
		}
	})

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, sel *goquery.Selection) {
		property := strings.TrimSpace(sel.AttrOr("property", ""))
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		if property != "" && content != "" {
			meta[property] = content
		}
	})

	return meta
}

func splitKeywords(content string) []string {
	parts := strings.Split(content, ",")
	kws := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kws = append(kws, p)
		}
	}
	return kws
}
