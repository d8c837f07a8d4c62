package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/profgrid/internal/cli"
	"github.com/rshade/profgrid/internal/config"
)

const peopleJSON = `[
  {"fullName": "Ada Lovelace", "jobTitle": "Analyst", "skills": ["math", "engines"], "linkedinUrl": "linkedin.com/in/ada"},
  {"fullName": "Grace Hopper", "jobTitle": "Admiral", "skills": ["cobol"]},
  {"fullName": "Alan Turing"}
]`

// isolate points config and logs at a temp home and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "error")
	return home
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", func(string) (string, bool) { return "", false })
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Structure(t *testing.T) {
	cmd := cli.NewRootCmd("1.2.3")

	assert.Equal(t, "profgrid", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"view", "export", "columns", "config"})
}

func TestViewCmd_PlainOutput(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "people.json", peopleJSON)

	out, err := execute(t, "view", "--plain", data)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Full Name"), lines[0])
	assert.Contains(t, lines[0], "Job Title")
	assert.True(t, strings.HasPrefix(lines[1], "Ada Lovelace"), lines[1])
	assert.Contains(t, lines[1], "math, eng", "skills is clipped at the viewport edge")
	assert.Contains(t, lines[3], "—", "missing values use the empty marker")
	assert.Contains(t, out, "3 of 3 records")
	assert.NotContains(t, out, "\x1b")
}

func TestViewCmd_NonTerminalFallsBackToPlain(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "people.json", peopleJSON)

	out, err := execute(t, "view", "--rows", "1", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Grace Hopper")
	assert.Contains(t, out, "1 of 3 records")
}

func TestViewCmd_Errors(t *testing.T) {
	home := isolate(t)
	bad := writeFile(t, home, "people.csv", "a,b\n")

	_, err := execute(t, "view")
	require.ErrorIs(t, err, cli.ErrNoInput)

	_, err = execute(t, "view", "--plain", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading data")
}

func TestExportCmd(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "people.json", peopleJSON)

	out, err := execute(t, "export", data, "--rows", "2-3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Full Name,Job Title,Company Name"))
	assert.True(t, strings.HasPrefix(lines[1], "Grace Hopper,Admiral,"))
	assert.True(t, strings.HasPrefix(lines[2], "Alan Turing,"))
}

func TestExportCmd_ToFile(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "people.json", peopleJSON)
	target := filepath.Join(home, "out.csv")

	out, err := execute(t, "export", data, "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	body, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(body), "math; engines")
	assert.Len(t, strings.Split(strings.TrimSpace(string(body)), "\n"), 4)
}

func TestExportCmd_InvalidRows(t *testing.T) {
	home := isolate(t)
	data := writeFile(t, home, "people.json", peopleJSON)

	_, err := execute(t, "export", data, "--rows", "5")
	require.ErrorIs(t, err, cli.ErrInvalidRows)
}

func TestParseRows(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		count   int
		want    []int
		wantErr bool
	}{
		{name: "empty means all", spec: "", count: 5, want: nil},
		{name: "single", spec: "3", count: 5, want: []int{2}},
		{name: "range", spec: "2-4", count: 5, want: []int{1, 2, 3}},
		{name: "mixed and unordered", spec: "5, 1-2", count: 5, want: []int{0, 1, 4}},
		{name: "duplicates collapse", spec: "1-3,2", count: 5, want: []int{0, 1, 2}},
		{name: "zero", spec: "0", count: 5, wantErr: true},
		{name: "past the end", spec: "6", count: 5, wantErr: true},
		{name: "reversed", spec: "4-2", count: 5, wantErr: true},
		{name: "not a number", spec: "a", count: 5, wantErr: true},
		{name: "open range", spec: "2-", count: 5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cli.ParseRows(tt.spec, tt.count)
			if tt.wantErr {
				require.ErrorIs(t, err, cli.ErrInvalidRows)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnsCmd(t *testing.T) {
	isolate(t)

	out, err := execute(t, "columns")
	require.NoError(t, err)
	assert.Contains(t, out, "fullName")
	assert.Contains(t, out, "Full Name")
	assert.Contains(t, out, "link")
	assert.Contains(t, out, "Total width: 180")
}

func TestConfigCmds(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "row_height: 1")
	assert.Contains(t, out, "link_column: linkedinUrl")

	out, err = execute(t, "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, home, "bad.yaml", "grid:\n  row_height: 0\n")

	_, err := execute(t, "--config", path, "columns")
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRootCmd_CustomColumns(t *testing.T) {
	home := isolate(t)
	path := writeFile(t, home, "cols.yaml", "grid:\n  link_column: \"\"\n  columns:\n    - id: fullName\n      width: 12\n    - id: skills\n")
	data := writeFile(t, home, "people.json", peopleJSON)

	out, err := execute(t, "--config", path, "view", "--plain", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Full Name   Skills"), out)
}
