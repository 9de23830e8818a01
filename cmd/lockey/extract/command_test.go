package extract

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMissingConfigFlagErrors(t *testing.T) {
	runE := Command().RunE
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	setCommandOutputForTesting(cmd)

	assert.Error(t, runE(cmd, []string{"some.key"}))
}

func TestCommandMissingQuietFlagErrors(t *testing.T) {
	runE := Command().RunE
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.Flags().StringP("config", "c", "lockey.json", "config")
	cmd.Flags().StringP("locales-dir", "l", "", "locales dir")
	setCommandOutputForTesting(cmd)

	assert.Error(t, runE(cmd, []string{"some.key"}))
}

func TestCommandExtractsValuesInRequestOrder(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"title": "Welcome", "nav": {"home": "Home", "about": "About"}}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--lang", "en", "--namespace", "common", "nav.about", "title"})

	require.NoError(t, cmd.Execute())

	expected := `{
  "nav.about": "About",
  "title": "Welcome"
}
`
	assert.Equal(t, expected, output.String())
	assert.Empty(t, errOut.String())
}

func TestCommandMissingKeyGetsErrorSentinel(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"title": "Welcome", "count": 5}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--lang", "en", "--namespace", "common", "title", "count", "nope"})

	require.NoError(t, cmd.Execute())

	expected := `{
  "title": "Welcome",
  "count": "ERROR: Value for key 'count' not found or not a string.",
  "nope": "ERROR: Value for key 'nope' not found or not a string."
}
`
	assert.Equal(t, expected, output.String())
	assert.NotEmpty(t, errOut.String())
}

func TestCommandWholeFileFailurePrintsEmptyObject(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	localesDir := t.TempDir()

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--lang", "en", "--namespace", "common", "title"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "{}\n", output.String())
	assert.NotEmpty(t, errOut.String())
}

func TestCommandReadsKeysFromFile(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"a": "1", "b": "2"}`)

	keysFile := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, afero.WriteFile(fs, keysFile, []byte(`["a", "b"]`), 0644))

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--lang", "en", "--namespace", "common", "--keys-file", keysFile})

	require.NoError(t, cmd.Execute())

	expected := `{
  "a": "1",
  "b": "2"
}
`
	assert.Equal(t, expected, output.String())
}

func TestCommandInvalidKeysFileErrors(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"a": "1"}`)

	keysFile := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, afero.WriteFile(fs, keysFile, []byte(`{"not": "an array"}`), 0644))

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	setCommandOutputForTesting(cmd)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--lang", "en", "--namespace", "common", "--keys-file", keysFile})

	assert.Error(t, cmd.Execute())
}

func writeLocaleFile(t *testing.T, fs afero.Fs, root string, language string, namespace string, content string) {
	t.Helper()
	path := filepath.Join(root, language, namespace+".json")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func addPersistentFlagsForTesting(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "lockey.json", "Path to the project configuration file")
	cmd.PersistentFlags().StringP("locales-dir", "l", "", "Root directory of the localization files")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all non-essential output")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug messages")
}

func setCommandOutputForTesting(cmd *cobra.Command) {
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
}
