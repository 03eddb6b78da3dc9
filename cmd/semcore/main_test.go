package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/semcore/internal/report"
	"github.com/funvibe/semcore/internal/store"
)

const cleanModule = `
decls:
  - {kind: global, name: width, value: {kind: int, value: 80}}
  - {kind: global, name: area, value: {kind: binary, op: '*', left: width, right: {kind: int, value: 25}}}
`

const brokenModule = `
decls:
  - {kind: global, name: a, value: b}
  - {kind: global, name: b, value: a}
  - {kind: global, name: c, value: nowhere}
`

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Clean(t *testing.T) {
	path := writeModule(t, t.TempDir(), "clean.yaml", cleanModule)
	code, _, stderr := runCLI(t, "", path)
	assert.Equal(t, 0, code, stderr)
	assert.NotContains(t, stderr, "error[")
}

func TestRun_DiagnosticsFail(t *testing.T) {
	path := writeModule(t, t.TempDir(), "broken.yaml", brokenModule)
	code, _, stderr := runCLI(t, "", "-color", "never", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error[R003]")
	assert.Contains(t, stderr, "error[R002]")
	assert.Contains(t, stderr, "analysis failed with 2 error(s)")
}

func TestRun_StrictStopsEarly(t *testing.T) {
	path := writeModule(t, t.TempDir(), "broken.yaml", brokenModule)
	code, _, stderr := runCLI(t, "", "-strict", "-color", "never", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "analysis failed with 1 error(s)")
}

func TestRun_Stdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, cleanModule, "-report", "-")
	require.Equal(t, 0, code, stderr)

	reports, err := report.Read(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "<stdin>", reports[0].File)
	require.Len(t, reports[0].Bindings, 2)
	assert.Equal(t, "2000", reports[0].Bindings[1].Constant)
}

func TestRun_DirectoryReportAndStore(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.yaml", cleanModule)
	writeModule(t, dir, "b.yml", brokenModule)
	writeModule(t, dir, "notes.txt", "not a module")

	out := t.TempDir()
	reportPath := filepath.Join(out, "report.yaml")
	dbPath := filepath.Join(out, "runs.db")
	code, _, _ := runCLI(t, "", "-color", "never", "-report", reportPath, "-store", dbPath, dir)
	assert.Equal(t, 1, code)

	f, err := os.Open(reportPath)
	require.NoError(t, err)
	defer f.Close()
	reports, err := report.Read(f)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Empty(t, reports[0].Diagnostics)
	assert.Len(t, reports[1].Diagnostics, 2)

	st, err := store.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer st.Close()
	bindings, err := st.Bindings(context.Background(), reports[1].RunID)
	require.NoError(t, err)
	assert.Equal(t, reports[1].Bindings, bindings)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeModule(t, dir, "semcore.yaml", "strict: true\ncolor: never\n")
	path := writeModule(t, dir, "broken.yaml", brokenModule)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfg, path}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "analysis failed with 1 error(s)")
}

func TestRun_UsageErrors(t *testing.T) {
	code, _, _ := runCLI(t, "", "-no-such-flag")
	assert.Equal(t, 2, code)

	code, _, stderr := runCLI(t, "", "-color", "sometimes")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "invalid color mode")

	code, _, _ = runCLI(t, "", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)

	code, _, stderr = runCLI(t, "", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no module files")
}

func TestRun_PrintSource(t *testing.T) {
	code, stdout, stderr := runCLI(t, cleanModule, "-print")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "// <stdin>\nwidth := 80\narea := width * 25\n", stdout)
}
