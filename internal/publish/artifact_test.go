package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDist(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html": "<!DOCTYPE html>",
		"index.js":   "console.log(1);",
		"index.css":  "body{}",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o640))
	}
	// Subdirectories are skipped by the flat enumeration.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "chunks"), 0o750))
	return dir
}

func TestCollectArtifacts(t *testing.T) {
	dir := writeDist(t)

	artifacts, err := CollectArtifacts(dir)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	byName := map[string]Artifact{}
	for _, a := range artifacts {
		byName[a.Name] = a
	}
	assert.Equal(t, "text/html", byName["index.html"].MediaType)
	assert.Equal(t, "application/javascript", byName["index.js"].MediaType)
	assert.Equal(t, "text/css", byName["index.css"].MediaType)
	assert.Equal(t, []byte("body{}"), byName["index.css"].Data)
}

func TestCollectArtifactsMissingDir(t *testing.T) {
	_, err := CollectArtifacts(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestFSPublisher(t *testing.T) {
	out := t.TempDir()
	artifacts := []Artifact{
		{Name: "index.html", Data: []byte("<html/>"), MediaType: "text/html"},
		{Name: "index.js", Data: []byte(";"), MediaType: "application/javascript"},
	}

	keys, err := NewFSPublisher(out).Publish(context.Background(), "abc123", artifacts)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123/index.html", "abc123/index.js"}, keys)

	data, err := os.ReadFile(filepath.Join(out, "abc123", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html/>", string(data))
}
