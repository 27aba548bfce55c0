package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-structurer/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@example.com | (555) 123-4567 | Austin, TX

SUMMARY
Backend engineer focused on distributed systems.

EXPERIENCE
Acme Corp | Senior Engineer | 2020 - Present
• Built the ingestion pipeline

EDUCATION
BS Computer Science, State University, 2015

SKILLS
Languages: golang, Python`

// resetFlags clears flag state left over from a previous Execute.
func resetFlags() {
	configPath, logLevel, logFormat = "", "", ""
	parseInputs, parseOutput = nil, ""
	parseClean, parseNormalizeSkills, parseReport, parseVerbose = false, false, false, false
	validateInput, validateSchema, validateReport, validateVerbose = "", "", false, false
	servePort = 0

	var clear func(*cobra.Command)
	clear = func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range cmd.Commands() {
			clear(sub)
		}
	}
	clear(rootCmd)
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand_Single(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jane.txt", sampleResume)

	stdout, _, err := executeCommand(t, "parse", "--in", path)
	require.NoError(t, err)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Jane Doe", doc.Name)
	assert.Equal(t, "jane@example.com", doc.Email)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Acme Corp", doc.Experience[0].Company)
}

func TestParseCommand_Report(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jane.txt", sampleResume)

	stdout, _, err := executeCommand(t, "parse", "--in", path, "--report", "--normalize-skills")
	require.NoError(t, err)

	var resp types.ParseResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.NotNil(t, resp.Report)
	require.NotEmpty(t, resp.Document.Skills)
	assert.Contains(t, resp.Document.Skills[0].Items, "Go")
}

func TestParseCommand_Multiple(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "jane.txt", sampleResume)
	second := writeFile(t, dir, "john.md", "John Smith\njohn@example.com")

	stdout, _, err := executeCommand(t, "parse", "--in", first, "--in", second)
	require.NoError(t, err)

	var results []parseResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0].Source)
	assert.Equal(t, "Jane Doe", results[0].Document.Name)
	assert.Equal(t, "John Smith", results[1].Document.Name)
}

func TestParseCommand_OutFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jane.txt", sampleResume)
	out := filepath.Join(dir, "jane.json")

	stdout, _, err := executeCommand(t, "parse", "--in", path, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 1 document(s)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Jane Doe", doc.Name)
}

func TestParseCommand_OutDir(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "jane.txt", sampleResume)
	sub := filepath.Join(dir, "other")
	require.NoError(t, os.Mkdir(sub, 0o755))
	second := writeFile(t, sub, "jane.md", "Jane Roe")
	outDir := filepath.Join(dir, "out") + string(filepath.Separator)

	_, _, err := executeCommand(t, "parse", "--in", first, "--in", second, "--out", outDir)
	require.NoError(t, err)

	for name, want := range map[string]string{"jane.json": "Jane Doe", "jane-2.json": "Jane Roe"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		var doc types.ResumeDocument
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, want, doc.Name)
	}
}

func TestParseCommand_Verbose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jane.txt", sampleResume)

	_, stderr, err := executeCommand(t, "parse", "--in", path, "--verbose", "--report")
	require.NoError(t, err)
	assert.Contains(t, stderr, "INGESTED")
	assert.Contains(t, stderr, "PARSED RESUME")
	assert.Contains(t, stderr, "COMPLETENESS")
}

func TestParseCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jane.txt", sampleResume)
	cfg := writeFile(t, dir, "config.yaml", "normalize_skills: true\nlog_level: error\n")

	stdout, _, err := executeCommand(t, "--config", cfg, "parse", "--in", path)
	require.NoError(t, err)

	var doc types.ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.NotEmpty(t, doc.Skills)
	assert.Contains(t, doc.Skills[0].Items, "Go")
}

func TestParseCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	unsupported := writeFile(t, dir, "resume.exe", "MZ")

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "missing --in", args: []string{"parse"}, errorString: "required"},
		{name: "file not found", args: []string{"parse", "--in", filepath.Join(dir, "missing.txt")}, errorString: "failed to read"},
		{name: "unsupported format", args: []string{"parse", "--in", unsupported}, errorString: "unsupported file type"},
		{name: "bad config", args: []string{"--config", filepath.Join(dir, "nope.yaml"), "parse", "--in", unsupported}, errorString: "failed to read config file"},
		{name: "bad log format", args: []string{"--log-format", "xml", "parse", "--in", unsupported}, errorString: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", sampleResume)
	docPath := filepath.Join(dir, "jane.json")

	_, _, err := executeCommand(t, "parse", "--in", resume, "--out", docPath)
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "validate", "--in", docPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")

	stdout, _, err = executeCommand(t, "validate", "--in", docPath, "--report")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"violations"`)
}

func TestValidateCommand_Failure(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"name": "", "email": 42}`)

	stdout, _, err := executeCommand(t, "validate", "--in", bad)
	require.Error(t, err)
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, err.Error(), "validation failed")

	_, _, err = executeCommand(t, "validate", "--in", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = executeCommand(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateCommand_CustomSchema(t *testing.T) {
	dir := t.TempDir()
	docPath := writeFile(t, dir, "doc.json", `{"name": "Jane Doe", "skills": []}`)
	loose := writeFile(t, dir, "loose.schema.json", `{"type": "object", "required": ["name"]}`)
	strict := writeFile(t, dir, "strict.schema.json", `{"type": "object", "required": ["name", "targetRole"]}`)

	stdout, _, err := executeCommand(t, "validate", "--in", docPath, "--schema", loose)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")

	stdout, _, err = executeCommand(t, "validate", "--in", docPath, "--schema", strict)
	require.Error(t, err)
	assert.Contains(t, stdout, "Validation failed")
	assert.Contains(t, err.Error(), "targetRole")
}

func TestServeCommand_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}
