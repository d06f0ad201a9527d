package torrentx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debrid-streamer/pkg/types"
)

const listingPage = `<!doctype html>
<html><body>
<table>
<thead><tr><th>Name</th><th>Links</th></tr></thead>
<tbody>
<tr>
  <td><a href="/torrent/1">First.Release.1080p.WEB-DL</a></td>
  <td><a class="dl" href="magnet:?xt=urn:btih:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa&amp;dn=First">magnet</a></td>
</tr>
<tr>
  <td colspan="2"><a href="https://ads.example/click">SPONSORED</a></td>
</tr>
<tr>
  <td><a href="/torrent/2">Second.Release.720p.HDTV</a></td>
  <td><a href="magnet:?xt=urn:btih:bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb&amp;dn=Second">magnet</a></td>
</tr>
<tr>
  <td><a href="magnet:?xt=urn:btih:cccccccccccccccccccccccccccccccccccccccc&amp;dn=Dn.Only.Release">magnet</a></td>
</tr>
</tbody>
</table>
</body></html>`

func TestIndexClientSearch(t *testing.T) {
	t.Parallel()

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{"q": q.Get("q"), "sort": q.Get("sort"), "order": q.Get("order")}
		require.Equal(t, "/search", r.URL.Path)
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	c := &IndexClient{BaseURL: srv.URL, HTTP: srv.Client()}
	got, err := c.Search(context.Background(), "Some Show S01E01")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"q":     "Some Show S01E01",
		"sort":  "seeders",
		"order": "desc",
	}, gotQuery)

	// header row and the magnet-less ad row are skipped; page order kept
	require.Len(t, got, 3)
	assert.Equal(t, types.Candidate{
		Title:  "First.Release.1080p.WEB-DL",
		Magnet: "magnet:?xt=urn:btih:aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa&dn=First",
	}, got[0])
	assert.Equal(t, "Second.Release.720p.HDTV", got[1].Title)
	// a row with only a magnet anchor falls back to the dn name
	assert.Equal(t, "Dn.Only.Release", got[2].Title)
}

func TestIndexClientSearchErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &IndexClient{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)

	srv.Close()
	_, err = c.Search(context.Background(), "anything")
	require.Error(t, err)
}

func TestIndexClientSearchEmptyPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>no results</p></body></html>"))
	}))
	defer srv.Close()

	c := &IndexClient{BaseURL: srv.URL, HTTP: srv.Client()}
	got, err := c.Search(context.Background(), "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, got)
}
