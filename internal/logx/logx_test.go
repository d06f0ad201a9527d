package logx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterDeny(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := New(&buf, 0, "", `connection reset`)

	_, err := w.Write([]byte("upstream: connection reset by peer\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("search done\n"))
	require.NoError(t, err)

	assert.Equal(t, "search done\n", buf.String())
}

func TestWriterAllow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := New(&buf, 0, `^keep`, "")

	_, _ = w.Write([]byte("keep this\n"))
	_, _ = w.Write([]byte("drop this\n"))

	assert.Equal(t, "keep this\n", buf.String())
}

func TestWriterDedup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := New(&buf, time.Minute, "", "")

	line := []byte("cache check failed\n")
	for range 3 {
		n, err := w.Write(line)
		require.NoError(t, err)
		assert.Equal(t, len(line), n, "dropped writes still report full length")
	}
	_, _ = w.Write([]byte("another line\n"))

	assert.Equal(t, "cache check failed\nanother line\n", buf.String())
}

func TestWriterBadPatternFailsSoft(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := New(&buf, 0, "(unclosed", "")

	_, err := w.Write([]byte("still logged\n"))
	require.NoError(t, err)
	assert.Equal(t, "still logged\n", buf.String())
}
