// Package torrentx talks to the torrent index: searching the result
// listing, parsing magnet links, and narrowing candidates by the user's
// preference policy.
package torrentx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"debrid-streamer/pkg/types"
)

type IndexClient struct {
	BaseURL string // e.g. https://bitsearch.to
	HTTP    *http.Client
}

// Search queries the index for the given text, requesting descending
// seeder order, and returns candidates in the order the page presents
// them. The upstream sort is the only ranking; results are never
// re-ordered here. Filtering is a separate stage (ApplyPolicy).
func (c *IndexClient) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("index url: %w", err)
	}
	u.Path = "/search"
	v := url.Values{}
	v.Set("q", query)
	v.Set("sort", "seeders")
	v.Set("order", "desc")
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index fetch: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("index parse: %w", err)
	}
	return candidatesFromListing(doc), nil
}

// candidatesFromListing walks the parsed page and emits one candidate
// per result row that carries a magnet-scheme anchor. Rows without one
// (ads, placeholders) are skipped, not errors.
func candidatesFromListing(doc *html.Node) []types.Candidate {
	var out []types.Candidate
	for _, row := range rows(doc) {
		magnet := ""
		title := ""
		walk(row, func(n *html.Node) {
			if n.Type != html.ElementNode || n.Data != "a" {
				return
			}
			href := attr(n, "href")
			if strings.HasPrefix(href, "magnet:") {
				if magnet == "" {
					magnet = href
				}
				return
			}
			if title == "" {
				title = strings.TrimSpace(text(n))
			}
		})
		if magnet == "" {
			continue
		}
		if title == "" {
			title = MagnetDisplayName(magnet)
		}
		out = append(out, types.Candidate{Title: title, Magnet: magnet})
	}
	return out
}

// rows collects every <tr> element in document order. Nested tables do
// not occur on the listings we parse, so <tr> subtrees are not descended.
func rows(doc *html.Node) []*html.Node {
	var out []*html.Node
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return out
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}
