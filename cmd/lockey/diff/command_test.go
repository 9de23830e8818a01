package diff

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

	assert.Error(t, runE(cmd, nil))
}

func TestCommandMissingLocalesDirFlagErrors(t *testing.T) {
	runE := Command().RunE
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.Flags().StringP("config", "c", "lockey.json", "config")
	setCommandOutputForTesting(cmd)

	assert.Error(t, runE(cmd, nil))
}

func TestCommandMissingQuietFlagErrors(t *testing.T) {
	runE := Command().RunE
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.Flags().StringP("config", "c", "lockey.json", "config")
	cmd.Flags().StringP("locales-dir", "l", "", "locales dir")
	setCommandOutputForTesting(cmd)

	assert.Error(t, runE(cmd, nil))
}

func TestCommandMissingDebugFlagErrors(t *testing.T) {
	runE := Command().RunE
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.Flags().StringP("config", "c", "lockey.json", "config")
	cmd.Flags().StringP("locales-dir", "l", "", "locales dir")
	cmd.Flags().BoolP("quiet", "q", false, "quiet")
	setCommandOutputForTesting(cmd)

	assert.Error(t, runE(cmd, nil))
}

func TestCommandReportsMissingKeysSorted(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"title": "Welcome", "nav": {"home": "Home", "about": "About"}}`)
	writeLocaleFile(t, fs, localesDir, "de", "common", `{"title": "Willkommen"}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--reference", "en", "--target", "de", "--namespace", "common"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "missing_de_common_keys: [\"nav.about\", \"nav.home\"]\n", output.String())
	assert.Empty(t, errOut.String())
}

func TestCommandEmptyDiffPrintsEmptyList(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"title": "Welcome"}`)
	writeLocaleFile(t, fs, localesDir, "de", "common", `{"title": "Willkommen"}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--reference", "en", "--target", "de", "--namespace", "common"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "missing_de_common_keys: []\n", output.String())
}

func TestCommandUnreadableTargetDegradesToEmptyWithWarning(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"a": "1", "b": "2"}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--locales-dir", localesDir, "--reference", "en", "--target", "de", "--namespace", "common"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "missing_de_common_keys: [\"a\", \"b\"]\n", output.String())
	assert.NotEmpty(t, errOut.String())
}

func TestCommandQuietStillPrintsReport(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewOsFs()
	localesDir := t.TempDir()
	writeLocaleFile(t, fs, localesDir, "en", "common", `{"a": "1"}`)
	writeLocaleFile(t, fs, localesDir, "de", "common", `{"a": "x"}`)

	cmd := Command()
	addPersistentFlagsForTesting(cmd)
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--quiet", "--locales-dir", localesDir, "--reference", "en", "--target", "de", "--namespace", "common"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "missing_de_common_keys: []\n", output.String())
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
