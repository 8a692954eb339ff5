package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptkit/scriptkit/pkg/fetch"
)

var generatedAt = time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC)

func sampleReport() Report {
	ds := fetch.NewDataset("name", "stars")
	ds.Append(map[string]string{"name": "hello-world", "stars": "42"})
	ds.Append(map[string]string{"name": "scripts", "stars": "7"})
	return Report{Title: "Weekly summary", GeneratedAt: generatedAt, Dataset: ds}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport()))
	html := buf.String()

	assert.Contains(t, html, "<h1>Weekly summary</h1>")
	assert.Contains(t, html, "2025-01-31 09:30 UTC")
	assert.Contains(t, html, "2 record(s)")
	assert.Contains(t, html, "<th>name</th><th>stars</th>")
	assert.Contains(t, html, "<td>hello-world</td><td>42</td>")
	assert.Contains(t, html, "<td>scripts</td><td>7</td>")
}

func TestRender_EscapesHTML(t *testing.T) {
	ds := fetch.NewDataset("description")
	ds.Append(map[string]string{"description": "<script>alert(1)</script>"})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report{GeneratedAt: generatedAt, Dataset: ds}))

	assert.NotContains(t, buf.String(), "<script>alert")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRender_DefaultTitle(t *testing.T) {
	r := sampleReport()
	r.Title = ""

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))
	assert.Contains(t, buf.String(), "<h1>scriptkit report</h1>")
}

func TestRender_NilDataset(t *testing.T) {
	err := Render(&bytes.Buffer{}, Report{GeneratedAt: generatedAt})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteFile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
	assert.Contains(t, string(data), "Weekly summary")
}

func TestSend_Validation(t *testing.T) {
	tests := []struct {
		name      string
		smtp      SMTPSettings
		env       Envelope
		wantError string
	}{
		{
			name:      "missing_host",
			env:       Envelope{From: "a@example.com", To: []string{"b@example.com"}},
			wantError: "smtp host is required",
		},
		{
			name:      "missing_recipients",
			smtp:      SMTPSettings{Host: "smtp.example.com", Port: 587},
			env:       Envelope{From: "a@example.com"},
			wantError: "at least one recipient",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Send(context.Background(), tt.smtp, tt.env, sampleReport())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
