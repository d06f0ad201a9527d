package torrentx

import (
	"net/url"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

// InfoHashFromMagnet extracts the btih content hash from a magnet URI.
// Canonical magnets (40-hex or base32 info hash) go through the strict
// metainfo parser, which also normalizes base32 to hex. Index pages are
// sloppy, so non-canonical xt tokens fall back to raw extraction.
// Returns ok=false when no hash can be extracted; such candidates are
// dropped before any cache check.
func InfoHashFromMagnet(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "magnet:") {
		return "", false
	}
	if m, err := metainfo.ParseMagnetURI(raw); err == nil && m.InfoHash != (metainfo.Hash{}) {
		return m.InfoHash.HexString(), true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	for _, xt := range u.Query()["xt"] {
		if h, ok := strings.CutPrefix(xt, "urn:btih:"); ok && h != "" {
			return h, true
		}
	}
	return "", false
}

// MagnetDisplayName returns the dn parameter of a magnet URI, if any.
func MagnetDisplayName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("dn")
}
