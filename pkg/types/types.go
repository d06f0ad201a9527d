package types

// Candidate is one torrent search result: a title and a magnet link,
// not yet known to be cache-available. Identity is the magnet URI.
type Candidate struct {
	Title  string
	Magnet string
}

// PreferencePolicy narrows candidates before the cache check.
// Empty include lists mean "no constraint"; any exclude hit rejects.
type PreferencePolicy struct {
	Quality []string // "2160p","1080p","720p",...
	Codec   []string // "hevc","x265","av1",...
	Audio   []string // "atmos","ddp","aac",...
	Exclude []string // "cam","hdts",...
}

// Empty reports whether the policy constrains nothing at all.
func (p PreferencePolicy) Empty() bool {
	return len(p.Quality) == 0 && len(p.Codec) == 0 && len(p.Audio) == 0 && len(p.Exclude) == 0
}

// StreamResult is one stream entry. A cached hit carries a direct
// download URL; the fallback path carries a synthetic magnet-scheme URL
// that only signals "download in progress". Callers must not rely on
// the distinction structurally.
type StreamResult struct {
	Name  string `json:"name,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Manifest is the addon capability document. Built once at startup,
// identical across requests.
type Manifest struct {
	ID          string   `json:"id"`
	Version     string   `json:"version"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
	Types       []string `json:"types"`
	Catalogs    []any    `json:"catalogs"`
	IDPrefixes  []string `json:"idPrefixes"`
}
