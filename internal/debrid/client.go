// Package debrid is the Real-Debrid style API client: batch cache
// checks, link unrestricting, and background magnet acquisition.
package debrid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client carries no credential: the token is per-request state in a
// multi-user addon and is passed to every call.
type Client struct {
	BaseURL string // e.g. https://api.real-debrid.com/rest/1.0
	HTTP    *http.Client
}

// CacheHit is one confirmed instantly-available torrent. Link is a
// service-internal token, not directly playable; Unrestrict resolves it.
type CacheHit struct {
	Hash     string
	Link     string
	Filename string
	Filesize int64
}

type apiError struct {
	Message string `json:"error"`
	Code    int    `json:"error_code"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("debrid api: %s (code %d)", e.Message, e.Code)
}

type cacheVariant struct {
	Link     string `json:"link"`
	Filename string `json:"filename"`
	Filesize int64  `json:"filesize"`
}

type cacheEntry struct {
	Cached []cacheVariant `json:"rd"`
}

// InstantAvailability issues one batch query for all hashes and returns
// the confirmed hits in the order the service reports them, which is
// not necessarily the order of the input. Hashes with an empty cache
// entry are omitted. An empty hash slice short-circuits to no call.
func (c *Client) InstantAvailability(ctx context.Context, token string, hashes []string) ([]CacheHit, error) {
	if len(hashes) == 0 {
		return nil, nil
	}
	u := c.BaseURL + "/torrents/instantAvailability/" + strings.Join(hashes, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req, token)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	// The response is a JSON object keyed by hash. Report order matters
	// downstream, so decode token by token instead of into a map.
	dec := json.NewDecoder(body)
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, fmt.Errorf("availability decode: %w", err)
	}
	var hits []CacheHit
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("availability decode: %w", err)
		}
		hash, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("availability decode: unexpected key %v", tok)
		}
		var entry cacheEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("availability decode %s: %w", hash, err)
		}
		if len(entry.Cached) == 0 {
			continue
		}
		v := entry.Cached[0]
		hits = append(hits, CacheHit{Hash: hash, Link: v.Link, Filename: v.Filename, Filesize: v.Filesize})
	}
	return hits, nil
}

// Unrestrict resolves a service-internal link token into a directly
// downloadable URL.
func (c *Client) Unrestrict(ctx context.Context, token, link string) (string, error) {
	form := url.Values{"link": {link}}
	body, err := c.postForm(ctx, token, "/unrestrict/link", form)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var out struct {
		Download string `json:"download"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return "", fmt.Errorf("unrestrict decode: %w", err)
	}
	if out.Download == "" {
		return "", fmt.Errorf("unrestrict: empty download url")
	}
	return out.Download, nil
}

// AddMagnet submits a magnet for background retrieval and returns the
// service-assigned job id.
func (c *Client) AddMagnet(ctx context.Context, token, magnet string) (string, error) {
	form := url.Values{"magnet": {magnet}}
	body, err := c.postForm(ctx, token, "/torrents/addMagnet", form)
	if err != nil {
		return "", err
	}
	defer body.Close()

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return "", fmt.Errorf("addMagnet decode: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("addMagnet: no job id")
	}
	return out.ID, nil
}

// SelectAllFiles marks every file of a submitted job for retrieval.
func (c *Client) SelectAllFiles(ctx context.Context, token, jobID string) error {
	form := url.Values{"files": {"all"}}
	body, err := c.postForm(ctx, token, "/torrents/selectFiles/"+jobID, form)
	if err != nil {
		return err
	}
	return body.Close()
}

func (c *Client) postForm(ctx context.Context, token, path string, form url.Values) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, token)
}

func (c *Client) do(req *http.Request, token string) (io.ReadCloser, error) {
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
			return nil, &ae
		}
		return nil, fmt.Errorf("debrid api: %s returned status %d", req.URL.Path, resp.StatusCode)
	}
	return resp.Body, nil
}
