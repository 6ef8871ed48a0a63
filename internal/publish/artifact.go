// Package publish collects built artifacts from a workspace's dist subtree
// and uploads them to object storage under the component's key prefix.
package publish

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
)

// Artifact is one produced output file destined for publication.
type Artifact struct {
	// Name is the file name relative to dist (outputs are flat).
	Name string
	// Data is the file content.
	Data []byte
	// MediaType is inferred from the file extension.
	MediaType string
}

// CollectArtifacts enumerates every regular file directly inside dir (no
// recursion; build outputs are flat) and reads it into an Artifact with its
// inferred media type.
func CollectArtifacts(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapWorkspace(err, "failed to enumerate build outputs").
			WithContext("path", dir)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name())) // #nosec G304 -- path is inside the workspace
		if err != nil {
			return nil, errors.WrapWorkspace(err, "failed to read build output").
				WithContext("file", entry.Name())
		}
		artifacts = append(artifacts, Artifact{
			Name:      entry.Name(),
			Data:      data,
			MediaType: MediaTypeFor(entry.Name()),
		})
	}
	return artifacts, nil
}
