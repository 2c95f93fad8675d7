package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/garagon/datascout/internal/artifact"
)

// resetFlags restores flag defaults and captures command output.
func resetFlags(t *testing.T, outDir string) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	flagOutputDir = outDir
	flagHTML = false
	flagNoColor = true
	flagQuiet = false
	flagVerbose = false
	flagLargeFileMB = 10
	t.Cleanup(func() {
		flagOutputDir = "."
		flagNoColor = false
		flagHTML = false
		flagQuiet = false
		flagLargeFileMB = 10
	})

	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return stdout, stderr
}

func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"people.csv": "id,name\n1,Ana\n2,Bo\n",
		"dump.sql":   "CREATE TABLE users (id INT);\n",
		"notes.md":   "# ignored\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestRunAnalyzeWritesArtifacts(t *testing.T) {
	dir := workspace(t)
	out := t.TempDir()
	stdout, stderr := resetFlags(t, out)

	require.NoError(t, runAnalyze(rootCmd, []string{dir}))

	summary, err := artifact.Load(filepath.Join(out, artifact.ResultsFile))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)

	report, err := os.ReadFile(filepath.Join(out, artifact.ReportFile))
	require.NoError(t, err)
	assert.Contains(t, string(report), "- Delimited Files: 1")
	assert.Contains(t, string(report), "- SQL Files: 1")

	_, err = os.Stat(filepath.Join(out, artifact.HTMLFile))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, stdout.String(), "DATASCOUT RESULTS")
	assert.Contains(t, stderr.String(), "Starting data analysis...")
	assert.Contains(t, stderr.String(), "Analyzing: dump.sql")
	assert.Contains(t, stderr.String(), "Analysis complete. Found 2 data files.")
	assert.Contains(t, stderr.String(), "Results saved to "+filepath.Join(out, artifact.ResultsFile))
}

func TestRunAnalyzeQuiet(t *testing.T) {
	dir := workspace(t)
	out := t.TempDir()
	stdout, stderr := resetFlags(t, out)
	flagQuiet = true

	require.NoError(t, runAnalyze(rootCmd, []string{dir}))

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
	_, err := os.Stat(filepath.Join(out, artifact.ReportFile))
	assert.NoError(t, err)
}

func TestRunAnalyzeConfigFromWorkspace(t *testing.T) {
	dir := workspace(t)
	out := filepath.Join(t.TempDir(), "reports")
	cfg := "output_dir: " + out + "\nhtml: true\nignore:\n  - \"dump.*\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".datascout.yml"), []byte(cfg), 0644))
	resetFlags(t, ".")

	require.NoError(t, runAnalyze(rootCmd, []string{dir}))

	summary, err := artifact.Load(filepath.Join(out, artifact.ResultsFile))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	_, err = os.Stat(filepath.Join(out, artifact.HTMLFile))
	assert.NoError(t, err)
}

func TestRunAnalyzeMissingDir(t *testing.T) {
	resetFlags(t, t.TempDir())

	err := runAnalyze(rootCmd, []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestRunAnalyzeRejectsBadThreshold(t *testing.T) {
	resetFlags(t, t.TempDir())
	flagLargeFileMB = 0

	err := runAnalyze(rootCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--large-mb")
}

func TestRunReportRegeneratesMarkdown(t *testing.T) {
	dir := workspace(t)
	first := t.TempDir()
	resetFlags(t, first)
	flagQuiet = true
	require.NoError(t, runAnalyze(rootCmd, []string{dir}))

	second := t.TempDir()
	flagOutputDir = second
	flagHTML = true
	require.NoError(t, runReport(rootCmd, []string{filepath.Join(first, artifact.ResultsFile)}))

	a, err := os.ReadFile(filepath.Join(first, artifact.ReportFile))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, artifact.ReportFile))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	_, err = os.Stat(filepath.Join(second, artifact.HTMLFile))
	assert.NoError(t, err)
}

func TestRunReportMissingFile(t *testing.T) {
	resetFlags(t, t.TempDir())
	err := runReport(rootCmd, []string{filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading results")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	verbose, err := newLogger(true, false)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerQuietLogsErrorsOnly(t *testing.T) {
	quiet, err := newLogger(false, true)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.ErrorLevel))

	both, err := newLogger(true, true)
	require.NoError(t, err)
	assert.False(t, both.Core().Enabled(zapcore.DebugLevel))
	assert.False(t, both.Core().Enabled(zapcore.WarnLevel))
}

func TestVersionCommand(t *testing.T) {
	stdout, _ := resetFlags(t, ".")
	versionCmd.SetOut(stdout)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, stdout.String(), "datascout dev")
}
