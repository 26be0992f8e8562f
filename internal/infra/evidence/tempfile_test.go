package evidence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAndRelease(t *testing.T) {
	t.Parallel()

	stager := &TempFileStager{Dir: t.TempDir()}

	ev, err := stager.Stage([]byte("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	got, err := os.ReadFile(ev.Path())
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), got)
	assert.Equal(t, "image/jpeg", ev.MIMEType())
	assert.True(t, strings.HasSuffix(ev.Path(), ".jpg"))

	require.NoError(t, ev.Release())
	_, err = os.Stat(ev.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestReleaseIdempotent(t *testing.T) {
	t.Parallel()

	stager := &TempFileStager{Dir: t.TempDir()}
	ev, err := stager.Stage([]byte("x"), "image/png")
	require.NoError(t, err)

	require.NoError(t, ev.Release())
	// second release is a no-op, never an error
	require.NoError(t, ev.Release())
}

func TestStageUniquePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stager := &TempFileStager{Dir: dir}

	a, err := stager.Stage([]byte("a"), "image/jpeg")
	require.NoError(t, err)
	b, err := stager.Stage([]byte("b"), "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, a.Path(), b.Path())
	assert.Equal(t, dir, filepath.Dir(a.Path()))

	assert.NoError(t, a.Release())
	assert.NoError(t, b.Release())
}

func TestExtensionByMIME(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/jpeg": ".jpg",
		"":           ".jpg",
	}
	for mime, ext := range cases {
		assert.Equal(t, ext, extFor(mime), mime)
	}
}
