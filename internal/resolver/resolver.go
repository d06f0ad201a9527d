// Package resolver chains the five stages that turn a catalog ID into
// playable streams: title lookup, index search, preference filtering,
// debrid cache check, and fallback acquisition. Every stage owns its
// own failure: an upstream error degrades that stage to empty output
// and the chain keeps going. Streams never returns an error.
package resolver

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"debrid-streamer/internal/debrid"
	"debrid-streamer/internal/torrentx"
	"debrid-streamer/pkg/types"
)

const (
	cachedPrefix      = "[RD+] "
	downloadingPrefix = "[RD DOWNLOADING] "
	configureTitle    = "[RD] Configure your Real-Debrid API token first"
	configureURL      = "https://real-debrid.com/apitoken"
)

// placeholderPrefix marks the synthetic, non-playable URL returned by
// the fallback path; the job id follows the prefix.
const placeholderPrefix = "magnet:?xt=urn:rd:"

type TitleResolver interface {
	ResolveTitle(ctx context.Context, contentType, id string) string
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]types.Candidate, error)
}

type Debrid interface {
	InstantAvailability(ctx context.Context, token string, hashes []string) ([]debrid.CacheHit, error)
	Unrestrict(ctx context.Context, token, link string) (string, error)
	AddMagnet(ctx context.Context, token, magnet string) (string, error)
	SelectAllFiles(ctx context.Context, token, jobID string) error
}

// Request is one stream-resolution request. Season/Episode are only
// meaningful for series.
type Request struct {
	Type    string // "movie" or "series"
	ID      string // catalog id, e.g. "tt0111161"
	Season  int
	Episode int

	Policy        types.PreferencePolicy
	Token         string
	AllowDownload bool
}

type Resolver struct {
	Name   string // stream display name in the client UI
	Meta   TitleResolver
	Index  Searcher
	Debrid Debrid
}

// Streams resolves the request to an ordered list of stream entries.
// It always returns a list, never an error; an empty list is a valid
// outcome ("nothing found").
func (r *Resolver) Streams(ctx context.Context, req Request) []types.StreamResult {
	if strings.TrimSpace(req.Token) == "" {
		log.Warn().Str("id", req.ID).Msg("no debrid token, skipping resolution")
		return []types.StreamResult{{Name: r.Name, Title: configureTitle, URL: configureURL}}
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil
	}

	title := r.Meta.ResolveTitle(ctx, req.Type, req.ID)
	if title == "" {
		log.Info().Str("id", req.ID).Msg("no title for id, nothing to search")
		return nil
	}

	query := title
	if req.Type == "series" {
		query = torrentx.EpisodeQuery(title, req.Season, req.Episode)
	}

	cands, err := r.Index.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("index search failed")
		cands = nil
	}
	cands = torrentx.ApplyPolicy(cands, req.Policy)
	log.Debug().Str("query", query).Int("candidates", len(cands)).Msg("search done")
	if len(cands) == 0 {
		return nil
	}

	streams := r.cachedStreams(ctx, req.Token, cands)
	if len(streams) == 0 && req.AllowDownload {
		if s, ok := r.startDownload(ctx, req.Token, cands[0]); ok {
			return []types.StreamResult{s}
		}
	}
	return streams
}

// cachedStreams checks which candidates the debrid cache already holds
// and resolves each hit to a direct URL. Hits come back in the order
// the service reports them. A failed per-hit resolve drops only that
// hit; a failed batch query drops the whole stage, silently degrading
// to zero results.
func (r *Resolver) cachedStreams(ctx context.Context, token string, cands []types.Candidate) []types.StreamResult {
	byHash := make(map[string]types.Candidate, len(cands))
	hashes := make([]string, 0, len(cands))
	for _, c := range cands {
		h, ok := torrentx.InfoHashFromMagnet(c.Magnet)
		if !ok {
			continue // unextractable hash drops the candidate
		}
		k := strings.ToLower(h)
		if _, dup := byHash[k]; dup {
			continue
		}
		byHash[k] = c
		hashes = append(hashes, h)
	}
	if len(hashes) == 0 {
		return nil
	}

	hits, err := r.Debrid.InstantAvailability(ctx, token, hashes)
	if err != nil {
		log.Warn().Err(err).Int("hashes", len(hashes)).Msg("cache check failed")
		return nil
	}

	var out []types.StreamResult
	for _, hit := range hits {
		u, err := r.Debrid.Unrestrict(ctx, token, hit.Link)
		if err != nil {
			log.Warn().Err(err).Str("hash", hit.Hash).Msg("unrestrict failed, skipping hit")
			continue
		}
		title := hit.Filename
		if c, ok := byHash[strings.ToLower(hit.Hash)]; ok {
			title = c.Title
		}
		out = append(out, types.StreamResult{Name: r.Name, Title: cachedPrefix + title, URL: u})
	}
	return out
}

// startDownload submits the best-ranked candidate (the first one, per
// the upstream sort) for background retrieval and returns a placeholder
// entry embedding the job id. Any failure yields no result.
func (r *Resolver) startDownload(ctx context.Context, token string, best types.Candidate) (types.StreamResult, bool) {
	jobID, err := r.Debrid.AddMagnet(ctx, token, best.Magnet)
	if err != nil {
		log.Warn().Err(err).Str("title", best.Title).Msg("addMagnet failed")
		return types.StreamResult{}, false
	}
	if err := r.Debrid.SelectAllFiles(ctx, token, jobID); err != nil {
		log.Warn().Err(err).Str("job", jobID).Msg("selectFiles failed")
		return types.StreamResult{}, false
	}
	log.Info().Str("job", jobID).Str("title", best.Title).Msg("background download started")
	return types.StreamResult{
		Name:  r.Name,
		Title: downloadingPrefix + best.Title,
		URL:   placeholderPrefix + jobID,
	}, true
}
