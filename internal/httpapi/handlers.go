// Package httpapi is the addon's boundary plumbing: manifest and
// stream endpoints, the configure page, and a liveness probe. All
// decision logic lives in internal/resolver.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"debrid-streamer/internal/middleware"
	"debrid-streamer/internal/resolver"
	"debrid-streamer/pkg/types"
)

type Handlers struct {
	Resolver *resolver.Resolver
	Manifest types.Manifest // immutable, built once at startup

	// request defaults when the path carries no token / the query
	// carries no preference overrides
	DefaultToken  string
	DefaultPolicy types.PreferencePolicy
	AllowDownload bool
}

// NewManifest builds the capability document.
func NewManifest(version string) types.Manifest {
	return types.Manifest{
		ID:          "community.debrid-streamer",
		Version:     version,
		Name:        "Debrid Streamer",
		Description: "Resolves movies and series to instantly-available debrid streams",
		Resources:   []string{"stream"},
		Types:       []string{"movie", "series"},
		Catalogs:    []any{},
		IDPrefixes:  []string{"tt"},
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/manifest.json", h.handleManifest)
	mux.HandleFunc("/{token}/manifest.json", h.handleManifest)
	mux.HandleFunc("/stream/{type}/{id}", h.handleStream)
	mux.HandleFunc("/{token}/stream/{type}/{id}", h.handleStream)
	mux.HandleFunc("/configure", h.handleConfigure)
	mux.HandleFunc("/healthz", h.handleHealth)
}

func (h *Handlers) handleManifest(w http.ResponseWriter, r *http.Request) {
	middleware.EnableCORS(w)
	if r.Method == http.MethodOptions {
		return
	}
	writeJSON(w, h.Manifest)
}

type streamsResp struct {
	Streams []types.StreamResult `json:"streams"`
}

func (h *Handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	middleware.EnableCORS(w)
	if r.Method == http.MethodOptions {
		return
	}

	token := h.DefaultToken
	if t := r.PathValue("token"); t != "" {
		token = t
	}

	id, season, episode, ok := parseStreamID(r.PathValue("id"))
	if !ok {
		http.Error(w, "bad stream id", http.StatusBadRequest)
		return
	}

	req := resolver.Request{
		Type:          r.PathValue("type"),
		ID:            id,
		Season:        season,
		Episode:       episode,
		Policy:        policyFromQuery(r, h.DefaultPolicy),
		Token:         token,
		AllowDownload: h.AllowDownload,
	}

	streams := h.Resolver.Streams(r.Context(), req)
	if streams == nil {
		streams = []types.StreamResult{}
	}
	log.Info().Str("type", req.Type).Str("id", id).Int("streams", len(streams)).Msg("stream request served")
	writeJSON(w, streamsResp{Streams: streams})
}

// parseStreamID splits "tt0903747:1:1.json" into id and season/episode.
// Movies carry a bare "tt0111161.json".
func parseStreamID(raw string) (id string, season, episode int, ok bool) {
	raw = strings.TrimSuffix(raw, ".json")
	if raw == "" {
		return "", 0, 0, false
	}
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		return parts[0], 0, 0, true
	case 3:
		s, err1 := strconv.Atoi(parts[1])
		e, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			return "", 0, 0, false
		}
		return parts[0], s, e, true
	default:
		return "", 0, 0, false
	}
}

// policyFromQuery lets a request override the configured preference
// lists via ?quality=1080p,720p&codec=...&audio=...&exclude=... .
func policyFromQuery(r *http.Request, def types.PreferencePolicy) types.PreferencePolicy {
	q := r.URL.Query()
	p := def
	if v, ok := q["quality"]; ok {
		p.Quality = splitList(v)
	}
	if v, ok := q["codec"]; ok {
		p.Codec = splitList(v)
	}
	if v, ok := q["audio"]; ok {
		p.Audio = splitList(v)
	}
	if v, ok := q["exclude"]; ok {
		p.Exclude = splitList(v)
	}
	return p
}

func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

const configurePage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Debrid Streamer</title></head>
<body>
<h1>Debrid Streamer</h1>
<p>Install the addon with your Real-Debrid API token in the URL:</p>
<pre>stremio://&lt;host&gt;/&lt;your-rd-token&gt;/manifest.json</pre>
<p>Your token: <a href="https://real-debrid.com/apitoken">real-debrid.com/apitoken</a></p>
</body>
</html>
`

func (h *Handlers) handleConfigure(w http.ResponseWriter, r *http.Request) {
	middleware.EnableCORS(w)
	if r.Method == http.MethodOptions {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(configurePage))
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("response encode failed")
	}
}
