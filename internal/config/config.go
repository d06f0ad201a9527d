package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	listenAddr string

	metaURL  string
	indexURL string
	rdURL    string
	rdToken  string

	allowDownload bool
	httpTimeout   time.Duration

	// default preference lists (empty = no constraint)
	qualityFilter []string
	codecFilter   []string
	audioFilter   []string
	excludeFilter []string

	// logging
	logLevel      string
	logFilePath   string
	logAllowRegex string
	logDenyRegex  string
	logDedupWin   time.Duration
)

// Load reads the whole configuration from the environment. Calling it
// again re-reads everything; unset variables fall back to defaults.
func Load() {
	listenAddr = getenv("LISTEN", ":7050")

	metaURL = strings.TrimRight(getenv("META_URL", "https://v3-cinemeta.strem.io"), "/")
	indexURL = strings.TrimRight(getenv("TORRENT_INDEX_URL", "https://bitsearch.to"), "/")
	rdURL = strings.TrimRight(getenv("RD_API_URL", "https://api.real-debrid.com/rest/1.0"), "/")
	rdToken = getenv("RD_TOKEN", "")

	allowDownload = getenvBool("ALLOW_DOWNLOAD", true)
	httpTimeout = getenvDuration("HTTP_TIMEOUT", 20*time.Second)

	qualityFilter = getenvList("QUALITY_FILTER")
	codecFilter = getenvList("CODEC_FILTER")
	audioFilter = getenvList("AUDIO_FILTER")
	excludeFilter = getenvList("EXCLUDE_FILTER")

	logLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	logFilePath = getenv("LOG_FILE", "")
	logAllowRegex = getenv("LOG_ALLOW", "")
	logDenyRegex = getenv("LOG_DENY", `context canceled|connection reset by peer`)
	logDedupWin = getenvDuration("LOG_DEDUP_WINDOW", 3*time.Second)
}

// getters
func ListenAddr() string            { return listenAddr }
func MetaURL() string               { return metaURL }
func IndexURL() string              { return indexURL }
func DebridURL() string             { return rdURL }
func DebridToken() string           { return rdToken }
func AllowDownload() bool           { return allowDownload }
func HTTPTimeout() time.Duration    { return httpTimeout }
func QualityFilter() []string       { return qualityFilter }
func CodecFilter() []string         { return codecFilter }
func AudioFilter() []string         { return audioFilter }
func ExcludeFilter() []string       { return excludeFilter }
func LogLevel() string              { return logLevel }
func LogFilePath() string           { return logFilePath }
func LogAllowRegex() string         { return logAllowRegex }
func LogDenyRegex() string          { return logDenyRegex }
func LogDedupWindow() time.Duration { return logDedupWin }

// helpers
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// getenvList parses a comma-separated env var, trimming blanks.
func getenvList(k string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(k), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
