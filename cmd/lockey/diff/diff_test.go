package diff

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockey/internal/logger"
	"lockey/internal/telemetry"
)

func newDiffDepsForTesting(fs afero.Fs, out *bytes.Buffer, errOut *bytes.Buffer) diffDeps {
	return diffDeps{
		fs:        fs,
		logger:    logger.New(out, errOut, false, false),
		telemetry: func(telemetry.CommandTelemetry) {},
	}
}

func TestRunDiffRequiresReferenceLanguage(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "lockey.json", []byte(`{"referenceLanguage": ""}`), 0644))
	deps := newDiffDepsForTesting(fs, &bytes.Buffer{}, &bytes.Buffer{})

	_, err := runDiff(diffOptions{ConfigPath: "lockey.json", Target: "de", Namespaces: []string{"common"}}, deps)

	assert.Error(t, err)
}

func TestRunDiffRequiresTargetLanguage(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	deps := newDiffDepsForTesting(fs, &bytes.Buffer{}, &bytes.Buffer{})

	_, err := runDiff(diffOptions{ConfigPath: "lockey.json", Reference: "en", Namespaces: []string{"common"}}, deps)

	assert.Error(t, err)
}

func TestRunDiffRequiresNamespace(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "lockey.json", []byte(`{"namespaces": []}`), 0644))
	deps := newDiffDepsForTesting(fs, &bytes.Buffer{}, &bytes.Buffer{})

	_, err := runDiff(diffOptions{ConfigPath: "lockey.json", Reference: "en", Target: "de"}, deps)

	assert.Error(t, err)
}

func TestRunDiffUsesConfigDefaults(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	configContent := `{
  "localesDir": "locales",
  "referenceLanguage": "en",
  "targetLanguages": ["de", "pl"],
  "namespaces": ["common"]
}`
	require.NoError(t, afero.WriteFile(fs, "lockey.json", []byte(configContent), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte(`{"a": "1", "b": "2"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/de/common.json", []byte(`{"a": "x"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/pl/common.json", []byte(`{}`), 0644))

	out := &bytes.Buffer{}
	deps := newDiffDepsForTesting(fs, out, &bytes.Buffer{})

	missing, err := runDiff(diffOptions{ConfigPath: "lockey.json"}, deps)

	require.NoError(t, err)
	assert.Equal(t, 3, missing)
	assert.Equal(t, "missing_de_common_keys: [\"b\"]\nmissing_pl_common_keys: [\"a\", \"b\"]\n", out.String())
}

func TestRunDiffFlagsOverrideConfig(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	configContent := `{
  "localesDir": "locales",
  "referenceLanguage": "en",
  "targetLanguages": ["de", "pl"],
  "namespaces": ["common"]
}`
	require.NoError(t, afero.WriteFile(fs, "lockey.json", []byte(configContent), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte(`{"a": "1"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/de/common.json", []byte(`{"a": "x"}`), 0644))

	out := &bytes.Buffer{}
	deps := newDiffDepsForTesting(fs, out, &bytes.Buffer{})

	_, err := runDiff(diffOptions{ConfigPath: "lockey.json", Target: "de"}, deps)

	require.NoError(t, err)
	assert.Equal(t, "missing_de_common_keys: []\n", out.String())
}

func TestRunDiffIgnoresNonStringReferenceLeaves(t *testing.T) {
	t.Setenv("LOCKEY_TEST", "true")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "locales/en/common.json", []byte(`{"count": 5, "name": "x"}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "locales/de/common.json", []byte(`{"name": "y"}`), 0644))

	out := &bytes.Buffer{}
	deps := newDiffDepsForTesting(fs, out, &bytes.Buffer{})

	missing, err := runDiff(diffOptions{
		LocalesDir: "locales",
		Reference:  "en",
		Target:     "de",
		Namespaces: []string{"common"},
	}, deps)

	require.NoError(t, err)
	assert.Equal(t, 0, missing)
	assert.Equal(t, "missing_de_common_keys: []\n", out.String())
}

func TestFormatReportLine(t *testing.T) {
	assert.Equal(t, `missing_de_common_keys: ["a.b", "c"]`, formatReportLine("de", "common", []string{"a.b", "c"}))
	assert.Equal(t, "missing_pl_errors_keys: []", formatReportLine("pl", "errors", nil))
}
