// Package meta resolves external catalog IDs (IMDb tt-IDs) to display
// titles via a Cinemeta-style metadata service.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Client struct {
	BaseURL string // e.g. https://v3-cinemeta.strem.io
	HTTP    *http.Client
}

type metaDoc struct {
	Meta struct {
		Name string `json:"name"`
	} `json:"meta"`
}

// ResolveTitle returns the best-known display title for the given id,
// or "" when the lookup fails in any way. Callers treat "" as "no
// usable query"; the failure is never propagated.
func (c *Client) ResolveTitle(ctx context.Context, contentType, id string) string {
	if id == "" {
		return ""
	}
	u := fmt.Sprintf("%s/meta/%s/%s.json", c.BaseURL, contentType, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ""
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("id", id).Msg("meta lookup failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("id", id).Msg("meta lookup non-200")
		return ""
	}

	var doc metaDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		log.Debug().Err(err).Str("id", id).Msg("meta decode failed")
		return ""
	}
	return doc.Meta.Name
}
