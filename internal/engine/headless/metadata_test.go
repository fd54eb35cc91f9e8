package headless

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><head>
		<title> Example Page </title>
		<meta name="description" content="A test page">
		<meta name="author" content="Jane Roe">
		<meta name="keywords" content="go, crawling , , markdown">
		<meta property="og:title" content="Example OG Title">
		<meta property="og:site_name" content="Example">
		<meta property="og:image" content="https://example.com/hero.png">
	</head><body></body></html>`)

	meta := extractMetadata(doc)

	require.Equal(t, "Example Page", meta["title"])
	require.Equal(t, "A test page", meta["description"])
	require.Equal(t, "Jane Roe", meta["author"])
	require.Equal(t, []string{"go", "crawling", "markdown"}, meta["keywords"])
	require.Equal(t, "Example OG Title", meta["og:title"])
	require.Equal(t, "Example", meta["og:site_name"])
	require.Equal(t, "https://example.com/hero.png", meta["og:image"])
}

func TestExtractMetadata_SkipsEmptyValues(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><head>
		<title></title>
		<meta name="description" content="">
		<meta property="og:title" content="  ">
	</head><body></body></html>`)

	meta := extractMetadata(doc)

	require.NotContains(t, meta, "title")
	require.NotContains(t, meta, "description")
	require.NotContains(t, meta, "og:title")
}

func TestExtractMetadata_IgnoresUnknownMetaNames(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<html><head>
		<meta name="viewport" content="width=device-width">
		<meta name="robots" content="noindex">
	</head><body></body></html>`)

	meta := extractMetadata(doc)
	require.Empty(t, meta)
}
