package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
rename:
  ignore:
    - "*.log"
    - "**/.git/**"
  number_start: 1
  number_width: 3
fetch:
  github_user: octocat
  max_repos: 5
  coins:
    - bitcoin
    - ethereum
report:
  title: Weekly summary
  output: report.html
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Rename)
	assert.Equal(t, []string{"*.log", "**/.git/**"}, cfg.Rename.Ignore)
	assert.Equal(t, 3, cfg.Rename.NumberWidth)

	require.NotNil(t, cfg.Fetch)
	assert.Equal(t, "octocat", cfg.Fetch.GithubUser)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, cfg.Fetch.Coins)

	require.NotNil(t, cfg.Report)
	assert.Equal(t, "Weekly summary", cfg.Report.Title)
	assert.Equal(t, path, cfg.Location())
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "fetch": {"github_user": "octocat"},
  "report": {
    "from": "bot@example.com",
    "to": ["team@example.com"],
    "smtp": {"host": "smtp.example.com"}
  }
}`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Report)
	require.NotNil(t, cfg.Report.SMTP)
	assert.Equal(t, "smtp.example.com", cfg.Report.SMTP.Host)
	// Port defaults during validation.
	assert.Equal(t, 587, cfg.Report.SMTP.Port)
}

func TestLoad_HCL(t *testing.T) {
	path := writeConfig(t, "config.hcl", `
rename {
  ignore       = ["*.bak"]
  number_width = 2
}

fetch {
  github_user = "octocat"
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Rename)
	assert.Equal(t, []string{"*.bak"}, cfg.Rename.Ignore)
	assert.Equal(t, 2, cfg.Rename.NumberWidth)
	require.NotNil(t, cfg.Fetch)
	assert.Equal(t, "octocat", cfg.Fetch.GithubUser)
}

func TestLoad_DotScriptkitTriesYAMLThenHCL(t *testing.T) {
	yamlPath := writeConfig(t, ".scriptkit", "fetch:\n  github_user: octocat\n")
	cfg, err := Load(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.Fetch.GithubUser)

	hclPath := writeConfig(t, ".scriptkit", "fetch {\n  github_user = \"octocat\"\n}\n")
	cfg, err = Load(context.Background(), hclPath)
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.Fetch.GithubUser)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantError string
	}{
		{
			name:      "unknown_yaml_field",
			file:      "config.yaml",
			content:   "rename:\n  nope: true\n",
			wantError: "parsing YAML",
		},
		{
			name:      "unknown_json_field",
			file:      "config.json",
			content:   `{"rename": {"nope": true}}`,
			wantError: "parsing JSON",
		},
		{
			name:      "unsupported_extension",
			file:      "config.toml",
			content:   "x = 1",
			wantError: "unsupported file extension",
		},
		{
			name:      "smtp_without_recipients",
			file:      "config.yaml",
			content:   "report:\n  from: bot@example.com\n  smtp:\n    host: smtp.example.com\n",
			wantError: "report.to is required",
		},
		{
			name:      "bad_date_position",
			file:      "config.yaml",
			content:   "rename:\n  date_position: middle\n",
			wantError: "date_position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
