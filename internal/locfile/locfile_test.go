package locfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockey/internal/loctree"
)

func TestPathFollowsLayoutConvention(t *testing.T) {
	assert.Equal(t, filepath.Join("public", "locales", "de", "common.json"), Path(filepath.Join("public", "locales"), "de", "common"))
}

func TestReadMissingFileReturnsNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Read(fs, "locales/en/common.json")

	assert.True(t, errors.Is(err, &NotFoundError{}))
}

func TestReadEmptyFileReturnsEmptyFileError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte(""), 0644))

	_, err := Read(fs, "locales/en/common.json")

	assert.True(t, errors.Is(err, &EmptyFileError{}))
}

func TestReadWhitespaceOnlyFileCountsAsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte("  \n\t\n"), 0644))

	_, err := Read(fs, "locales/en/common.json")

	assert.True(t, errors.Is(err, &EmptyFileError{}))
}

func TestReadMalformedFileReturnsMalformedError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte(`{"a": `), 0644))

	_, err := Read(fs, "locales/en/common.json")

	assert.True(t, errors.Is(err, &MalformedError{}))
}

func TestReadErrorsCarryThePath(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Read(fs, "locales/en/common.json")

	assert.True(t, errors.Is(err, &NotFoundError{Path: "locales/en/common.json"}))
	assert.False(t, errors.Is(err, &NotFoundError{Path: "locales/en/other.json"}))
}

func TestReadPreservesKeyOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte(`{"zebra": "z", "apple": {"core": "c"}, "mango": "m"}`)
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", content, 0644))

	tree, err := Read(fs, "locales/en/common.json")

	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, tree.Keys())
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	tree := loctree.New()
	require.NoError(t, loctree.Set(tree, "greeting", "hello"))

	err := Write(fs, "locales/fr/common.json", tree)

	require.NoError(t, err)
	exists, err := afero.Exists(fs, "locales/fr/common.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	fs := afero.NewMemMapFs()
	tree := loctree.New()
	require.NoError(t, loctree.Set(tree, "nav.home", "Home"))
	require.NoError(t, loctree.Set(tree, "nav.about", "About"))
	require.NoError(t, loctree.Set(tree, "title", "Welcome"))

	path := Path("locales", "en", "common")
	require.NoError(t, Write(fs, path, tree))

	readBack, err := Read(fs, path)
	require.NoError(t, err)

	value, ok := loctree.Get(readBack, "nav.about")
	assert.True(t, ok)
	assert.Equal(t, "About", value)
	assert.Equal(t, []string{"nav", "title"}, readBack.Keys())
}
