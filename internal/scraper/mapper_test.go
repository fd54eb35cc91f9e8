package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapResult_FullMetadata(t *testing.T) {
	t.Parallel()

	res := CrawlResult{
		Success: true,
		Metadata: map[string]any{
			"og:title":       "Example Title",
			"og:description": "An example page",
			"og:type":        "article",
			"og:image":       "https://example.com/hero.png",
			"og:url":         "https://example.com/post",
			"og:site_name":   "Example",
			"author":         "Jane Roe",
			"keywords":       []string{"go", "crawling"},
		},
		RawMarkdown: "# Example Title",
	}

	resp := MapResult(res)

	require.True(t, resp.Success)
	require.Equal(t, "Example Title", resp.Title)
	require.Equal(t, "An example page", resp.Description)
	require.Equal(t, "article", resp.Type)
	require.Equal(t, "https://example.com/hero.png", resp.Image)
	require.Equal(t, "https://example.com/post", resp.URL)
	require.Equal(t, "Example", resp.SiteName)
	require.Equal(t, "Jane Roe", resp.Author)
	require.Equal(t, []string{"go", "crawling"}, resp.Keywords)
	require.Equal(t, "# Example Title", resp.RawMarkdown)
}

func TestMapResult_MissingKeysMapToNull(t *testing.T) {
	t.Parallel()

	resp := MapResult(CrawlResult{Success: true, RawMarkdown: "content"})

	require.Nil(t, resp.Title)
	require.Nil(t, resp.Author)
	require.Nil(t, resp.Keywords)

	// Missing keys must serialize as null, not disappear.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"title", "description", "type", "image", "url", "site_name", "author", "keywords"} {
		require.Contains(t, decoded, key)
		require.Nil(t, decoded[key])
	}
	require.Equal(t, "content", decoded["raw_markdown"])
}

func TestMapResult_NilMetadata(t *testing.T) {
	t.Parallel()

	resp := MapResult(CrawlResult{Success: true})
	require.Nil(t, resp.Title)
	require.True(t, resp.Success)
}
