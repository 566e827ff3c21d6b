package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	path, err := s.Save("burger.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir, "burger.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveSuffixesOnCollision(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	first, err := s.Save("burger.png", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.Save("burger.png", strings.NewReader("two"))
	require.NoError(t, err)
	third, err := s.Save("burger.png", strings.NewReader("three"))
	require.NoError(t, err)

	assert.Equal(t, "burger.png", filepath.Base(first))
	assert.Equal(t, "burger(1).png", filepath.Base(second))
	assert.Equal(t, "burger(2).png", filepath.Base(third))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestSaveNoExtension(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	_, err := s.Save("logo", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save("logo", strings.NewReader("b"))
	require.NoError(t, err)

	assert.Equal(t, "logo(1)", filepath.Base(second))
}

func TestSaveCreatesDir(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "nested", "images")}

	path, err := s.Save("x.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
