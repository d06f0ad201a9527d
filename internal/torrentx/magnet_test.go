package torrentx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoHashFromMagnet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		magnet string
		want   string
		ok     bool
	}{
		{
			name:   "canonical 40-hex",
			magnet: "magnet:?xt=urn:btih:C12FE1C06BDE254F57A977EBD56E6F897E29F5FA&dn=Big+Buck+Bunny",
			want:   "c12fe1c06bde254f57a977ebd56e6f897e29f5fa",
			ok:     true,
		},
		{
			name:   "non-canonical short token",
			magnet: "magnet:?xt=urn:btih:ABC123&dn=X",
			want:   "ABC123",
			ok:     true,
		},
		{
			name:   "no xt parameter",
			magnet: "magnet:?dn=Some+Release&tr=udp%3A%2F%2Ftracker.example%3A1337",
			ok:     false,
		},
		{
			name:   "not a magnet",
			magnet: "https://example.org/details/42",
			ok:     false,
		},
		{
			name:   "empty",
			magnet: "",
			ok:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := InfoHashFromMagnet(tc.magnet)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestMagnetDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Big Buck Bunny", MagnetDisplayName("magnet:?xt=urn:btih:abc&dn=Big+Buck+Bunny"))
	assert.Equal(t, "", MagnetDisplayName("magnet:?xt=urn:btih:abc"))
}

func TestEpisodeQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Breaking Bad S01E01", EpisodeQuery("Breaking Bad", 1, 1))
	assert.Equal(t, "Foo S12E03", EpisodeQuery("Foo", 12, 3))
}
