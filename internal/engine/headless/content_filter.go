package headless

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/primerlabs/webscraper/internal/scraper"
)

// socialMediaHosts are matched as suffixes against link hostnames.
var socialMediaHosts = []string{
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"linkedin.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
	"reddit.com",
}

// overlaySelectors target the usual suspects layered on top of content.
var overlaySelectors = []string{
	"[class*='modal']",
	"[class*='overlay']",
	"[class*='popup']",
	"[class*='cookie']",
	"[id*='cookie-banner']",
	"[aria-modal='true']",
}

// pruneDocument mutates the rendered DOM in place according to the run
// configuration, ahead of markdown conversion.
func pruneDocument(doc *goquery.Document, run scraper.RunConfig, pageURL string) {
	for _, tag := range run.ExcludedTags {
		doc.Find(tag).Remove()
	}

	if run.RemoveOverlayElements {
		for _, sel := range overlaySelectors {
			doc.Find(sel).Remove()
		}
	}

	pageHost := hostOf(pageURL)

	if run.ExcludeExternalImages {
		doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
			if isExternal(img.AttrOr("src", ""), pageHost) {
				img.Remove()
			}
		})
	}

	if run.ExcludeExternalLinks || run.ExcludeSocialMediaLinks {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href := a.AttrOr("href", "")
			host := hostOf(href)
			if run.ExcludeSocialMediaLinks && isSocialMediaHost(host) {
				a.Remove()
				return
			}
			if run.ExcludeExternalLinks && isExternal(href, pageHost) {
				// Keep the anchor text, drop the link itself.
				a.RemoveAttr("href")
			}
		})
	}

	applyContentFilter(doc, run.ContentFilter)
}

// applyContentFilter prunes text blocks that are too short and too
// link-heavy to be content. Blocks at or above MinWordThreshold words
// always survive; shorter ones are kept only if their content score
// clears the threshold.
func applyContentFilter(doc *goquery.Document, cf scraper.ContentFilterConfig) {
	doc.Find("p, li, blockquote").Each(func(_ int, sel *goquery.Selection) {
		words := len(strings.Fields(sel.Text()))
		if words == 0 {
			sel.Remove()
			return
		}
		if cf.MinWordThreshold > 0 && words >= cf.MinWordThreshold {
			return
		}
		if contentScore(sel, words) < effectiveThreshold(cf, sel) {
			sel.Remove()
		}
	})
}

// contentScore is the fraction of a block's words that live outside
// anchors: 1.0 for pure prose, 0.0 for a bare link list.
func contentScore(sel *goquery.Selection, totalWords int) float64 {
	linkWords := len(strings.Fields(sel.Find("a").Text()))
	if linkWords > totalWords {
		linkWords = totalWords
	}
	return 1 - float64(linkWords)/float64(totalWords)
}

// tagWeights lower the dynamic threshold for tags that usually carry
// real prose, so short paragraphs survive while short link rows do not.
var tagWeights = map[string]float64{
	"p":          0.6,
	"blockquote": 0.6,
	"li":         0.8,
}

func effectiveThreshold(cf scraper.ContentFilterConfig, sel *goquery.Selection) float64 {
	if cf.ThresholdType == "fixed" {
		return cf.Threshold
	}
	weight, ok := tagWeights[goquery.NodeName(sel)]
	if !ok {
		weight = 1
	}
	return cf.Threshold * weight
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
}

// isExternal reports whether rawURL points at a different host than
// pageHost. Relative URLs are never external.
func isExternal(rawURL, pageHost string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	return host != pageHost
}

func isSocialMediaHost(host string) bool {
	if host == "" {
		return false
	}
	for _, social := range socialMediaHosts {
		if host == social || strings.HasSuffix(host, "."+social) {
			return true
		}
	}
	return false
}
