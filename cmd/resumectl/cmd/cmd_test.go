package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeJSON = `{
  "personalInfo": {"fullName": "Jane Doe", "title": "Software Engineer", "email": "jane@example.com"},
  "experiences": [{"id": "e1", "position": "Engineer", "company": "Acme", "startDate": "2020-01", "current": true,
    "description": "Built the billing platform in Go."}],
  "skills": [{"id": "s1", "name": "Go", "level": 5, "category": "Technical"}]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeResume(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestTemplatesList(t *testing.T) {
	out, err := runCLI(t, "templates", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 31)
	assert.Contains(t, out, "modern-1")

	out, err = runCLI(t, "templates", "list", "--category", "creative")
	require.NoError(t, err)
	assert.NotContains(t, out, "classic-1")

	_, err = runCLI(t, "templates", "list", "--category", "nope")
	assert.Error(t, err)
}

func TestRenderAndExportText(t *testing.T) {
	in := writeResume(t, janeJSON)
	dir := t.TempDir()

	html := filepath.Join(dir, "preview.html")
	_, err := runCLI(t, "render", "--in", in, "--template", "classic-1", "--out", html)
	require.NoError(t, err)
	page, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Jane Doe")

	pdf := filepath.Join(dir, "resume.pdf")
	out, err := runCLI(t, "export", "--in", in, "--strategy", "text", "--out", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "text")
	b, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	_, err = runCLI(t, "render", "--in", in, "--template", "nope", "--out", html)
	assert.Error(t, err)
}

func TestExportTextAcceptsDraft(t *testing.T) {
	in := writeResume(t, `{"personalInfo": {"fullName": "Jane Doe", "website": "janedoe.dev"},
  "skills": [{"id": "s1", "name": "Go", "level": 9}]}`)
	pdf := filepath.Join(t.TempDir(), "resume.pdf")
	_, err := runCLI(t, "export", "--in", in, "--strategy", "text", "--out", pdf)
	require.NoError(t, err)
	b, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestReview(t *testing.T) {
	in := writeResume(t, janeJSON)
	out, err := runCLI(t, "review", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 50/100 (Fair)")
	assert.Contains(t, out, "Education")
}

func TestInvalidResumeFile(t *testing.T) {
	in := writeResume(t, `{"skills": []}`)
	_, err := runCLI(t, "review", "--in", in)
	assert.Error(t, err)

	_, err = runCLI(t, "review")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "resumectl v0.1.0\n", out)
}
