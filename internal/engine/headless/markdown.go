package headless

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/primerlabs/webscraper/internal/scraper"
)

// renderMarkdown converts the pruned document body to markdown. The
// generator options mirror the crawl contract: links collapse to their
// text, images disappear entirely, and HTML escaping can be disabled.
func renderMarkdown(doc *goquery.Document, pageURL string, gen scraper.MarkdownGeneratorConfig) (string, error) {
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize body: %w", err)
	}

	var opts *md.Options
	if !gen.EscapeHTML {
		opts = &md.Options{EscapeMode: "disabled"}
	}
	conv := md.NewConverter(hostOf(pageURL), true, opts)

	if gen.IgnoreLinks {
		conv.AddRules(md.Rule{
			Filter: []string{"a"},
			Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
				return md.String(content)
			},
		})
	}
	if gen.IgnoreImages {
		conv.AddRules(md.Rule{
			Filter: []string{"img"},
			Replacement: func(_ string, _ *goquery.Selection, _ *md.Options) *string {
				return md.String("")
			},
		})
	}

	markdown, err := conv.ConvertString(body)
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
