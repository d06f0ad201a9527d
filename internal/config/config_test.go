package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LISTEN", "META_URL", "RD_API_URL", "ALLOW_DOWNLOAD", "QUALITY_FILTER", "HTTP_TIMEOUT"} {
		t.Setenv(k, "")
	}
	Load()

	assert.Equal(t, ":7050", ListenAddr())
	assert.Equal(t, "https://v3-cinemeta.strem.io", MetaURL())
	assert.Equal(t, "https://api.real-debrid.com/rest/1.0", DebridURL())
	assert.True(t, AllowDownload())
	assert.Empty(t, QualityFilter())
	assert.Equal(t, 20*time.Second, HTTPTimeout())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LISTEN", ":9999")
	t.Setenv("TORRENT_INDEX_URL", "https://index.example/")
	t.Setenv("RD_TOKEN", "tok")
	t.Setenv("ALLOW_DOWNLOAD", "false")
	t.Setenv("QUALITY_FILTER", "1080p, 720p,,")
	t.Setenv("EXCLUDE_FILTER", "cam,hdts")
	t.Setenv("HTTP_TIMEOUT", "5s")

	Load()

	assert.Equal(t, ":9999", ListenAddr())
	assert.Equal(t, "https://index.example", IndexURL(), "trailing slash trimmed")
	assert.Equal(t, "tok", DebridToken())
	assert.False(t, AllowDownload())
	assert.Equal(t, []string{"1080p", "720p"}, QualityFilter())
	assert.Equal(t, []string{"cam", "hdts"}, ExcludeFilter())
	assert.Equal(t, 5*time.Second, HTTPTimeout())
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("ALLOW_DOWNLOAD", "maybe")
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	Load()

	assert.True(t, AllowDownload())
	assert.Equal(t, 20*time.Second, HTTPTimeout())
}
