package publish

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
)

// FSPublisher writes artifacts into a local directory tree mirroring the
// object storage key layout. It backs the CLI's one-shot build command so a
// snippet can be compiled and inspected without storage credentials.
type FSPublisher struct {
	baseDir string
}

// NewFSPublisher creates a publisher rooted at baseDir.
func NewFSPublisher(baseDir string) *FSPublisher {
	return &FSPublisher{baseDir: baseDir}
}

// Publish writes each artifact to `<baseDir>/<componentID>/<name>`.
func (p *FSPublisher) Publish(_ context.Context, componentID string, artifacts []Artifact) ([]string, error) {
	dir := filepath.Join(p.baseDir, componentID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.WrapPublish(err, "failed to create output directory").
			WithContext("path", dir)
	}

	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if err := os.WriteFile(filepath.Join(dir, a.Name), a.Data, 0o640); err != nil {
			return nil, errors.WrapPublish(err, "failed to write artifact").
				WithContext("file", a.Name)
		}
		keys = append(keys, componentID+"/"+a.Name)
	}
	return keys, nil
}
