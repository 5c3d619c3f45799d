package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wagner/internal/translate"
)

const sumGraph = `
root: add
nodes:
  - {id: add, op: binop, binop: "+", args: [a, b]}
  - {id: a, op: input, index: 0}
  - {id: b, op: input, index: 1}
`

const diffGraph = `
root: sub
nodes:
  - {id: sub, op: binop, binop: "-", args: [a, k]}
  - {id: a, op: input, index: 0}
  - {id: k, op: int, value: 4410}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestTranslateCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sum.yaml", sumGraph)

	out, _, err := execute(t, "translate", "--ui", "off", path)
	require.NoError(t, err)
	require.Equal(t, "Initial env is:\n\n"+
		"let [1] = IN_0 in\n"+
		"let [2] = IN_1 in\n"+
		"let [3] = (P[1] + P[2]) in\n"+
		"\nProgram is:\n\n"+
		"P[3]\n", out)

	out, _, err = execute(t, "translate", "--ui", "off", "--inline", "--env=false", path)
	require.NoError(t, err)
	require.Contains(t, out, "(IN_0 + IN_1)")
	require.NotContains(t, out, "Initial env")
}

func TestTranslateCommandJSON(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.yaml", sumGraph)
	bad := writeFile(t, dir, "b.yaml", "root: nope\nnodes: []\n")

	out, _, err := execute(t, "translate", "--format", "json", "--no-cache", good, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 files failed")

	var payload translateJSON
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Files, 2)
	require.Equal(t, good, payload.Files[0].Path)
	require.NotEmpty(t, payload.Files[0].Output)
	require.NotEmpty(t, payload.Files[1].Error)
	require.Equal(t, 1, payload.Diagnostics.Count)
	require.Equal(t, "IO4002", payload.Diagnostics.Diagnostics[0].Code)
}

func TestTranslateCommandBatchSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", sumGraph)
	writeFile(t, dir, "b.yml", diffGraph)

	out, errOut, err := execute(t, "translate", "--ui", "off", "--timings", dir)
	require.NoError(t, err)
	require.Contains(t, out, "== "+filepath.Join(dir, "a.yaml")+" ==")
	require.Contains(t, out, "== "+filepath.Join(dir, "b.yml")+" ==")
	require.Contains(t, errOut, "translated 2 files (0 cached, 0 failed, 0 warnings)")
	require.Contains(t, errOut, "timings:")
}

func TestTranslateCommandSameContentHitsCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", sumGraph)
	writeFile(t, dir, "b.yml", sumGraph)

	out, errOut, err := execute(t, "translate", "--ui", "off", "--jobs", "1", dir)
	require.NoError(t, err)
	require.Contains(t, out, "== "+filepath.Join(dir, "b.yml")+" ==")
	require.Contains(t, errOut, "translated 2 files (1 cached, 0 failed, 0 warnings)")
}

func TestTranslateRejectsBadFlags(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sum.yaml", sumGraph)

	_, _, err := execute(t, "translate", "--hits", "sideways", path)
	require.ErrorContains(t, err, "invalid hit policy")
	_, _, err = execute(t, "translate", "--format", "xml", path)
	require.ErrorContains(t, err, "unsupported format")
	_, _, err = execute(t, "translate", "--ui", "maybe", path)
	require.ErrorContains(t, err, "invalid --ui value")
	_, _, err = execute(t, "--color", "sometimes", "version")
	require.ErrorContains(t, err, "invalid --color value")
}

func TestClassifyCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sum.yaml", sumGraph)

	out, _, err := execute(t, "classify", path)
	require.NoError(t, err)
	require.Contains(t, out, "*3  add  binop  [1 2]  +")
	require.Contains(t, out, " 1  a    input  index=0")

	out, _, err = execute(t, "classify", "--format", "json", path)
	require.NoError(t, err)
	var nodes []classifiedNode
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 3)
	require.True(t, nodes[2].Root)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, "wagner", payload.Tool)
	require.Equal(t, "unknown", payload.GitCommit)
}

func TestCleanCommand(t *testing.T) {
	out, _, err := execute(t, "clean")
	require.NoError(t, err)
	require.Contains(t, out, "removed ")
}

func TestManifestSettings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, manifestName, `
[translate]
inline = true
hits = "raw"
[output]
env = false
[driver]
jobs = 3
cache = false
`)
	nested := filepath.Join(root, "graphs", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	manifest, ok, err := loadProjectManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, manifest.Root)

	cmd := newTranslateCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--jobs", "5"}))
	s, err := resolveTranslateSettings(cmd, manifest)
	require.NoError(t, err)
	require.True(t, s.inline)
	require.Equal(t, translate.HitRaw, s.hits)
	require.False(t, s.env)
	require.False(t, s.stats)
	require.Equal(t, 5, s.jobs)
	require.False(t, s.cache)
}

func TestManifestRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, manifestName, "[translate]\ninlin = true\n")
	_, _, err := loadProjectManifest(root)
	require.ErrorContains(t, err, "unknown keys: translate.inlin")

	writeFile(t, root, manifestName, "[translate]\nhits = \"maybe\"\n")
	_, _, err = loadProjectManifest(root)
	require.ErrorContains(t, err, "[translate].hits")
}

func TestUIMode(t *testing.T) {
	mode, err := readUIMode(" ON ")
	require.NoError(t, err)
	require.True(t, shouldUseTUI(mode, 1))
	mode, err = readUIMode("")
	require.NoError(t, err)
	require.Equal(t, uiModeAuto, mode)
	require.False(t, shouldUseTUI(uiModeOff, 3))
	require.False(t, shouldUseTUI(uiModeAuto, 1))
}

func TestTranslateWithProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sum.yaml", sumGraph)
	cpu := filepath.Join(dir, "cpu.pprof")
	traceOut := filepath.Join(dir, "trace.ndjson")

	_, _, err := execute(t, "--cpu-profile", cpu, "--trace", traceOut, "--trace-level", "detail",
		"translate", "--ui", "off", "--no-cache", path)
	require.NoError(t, err)
	require.FileExists(t, cpu)
	data, err := os.ReadFile(traceOut)
	require.NoError(t, err)
	require.Contains(t, string(data), `"translate"`)
}
