package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/logfields"
)

// Subdirectory names inside a workspace.
const (
	SrcDirName  = "src"
	DistDirName = "dist"
)

// Manager owns one build's workspace. The directory name combines the
// caller-supplied component ID with a generated suffix so two concurrent
// builds for the same component never race on the same tree; the component
// ID alone remains the public storage prefix.
type Manager struct {
	componentID  string
	baseDir      string
	templatesDir string
	root         string
}

// NewManager creates a workspace manager for one build. baseDir empty means
// the system temp directory. templatesDir is the skeleton to seed from.
func NewManager(componentID, baseDir, templatesDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{
		componentID:  componentID,
		baseDir:      baseDir,
		templatesDir: templatesDir,
	}
}

// Create materializes the workspace: copies the template skeleton into a
// fresh root, then ensures the src and dist subdirectories exist.
func (m *Manager) Create() error {
	root := filepath.Join(m.baseDir, m.componentID+"-"+uuid.NewString()[:8])

	if err := copyTree(m.templatesDir, root); err != nil {
		// Remove whatever partial tree the failed copy left behind.
		_ = os.RemoveAll(root)
		return errors.WrapWorkspace(err, "failed to seed workspace from template skeleton").
			WithContext("templates", m.templatesDir)
	}
	m.root = root

	for _, sub := range []string{SrcDirName, DistDirName} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o750); err != nil {
			return errors.WrapWorkspace(err, "failed to create "+sub+" directory")
		}
	}

	slog.Debug("Created workspace", logfields.ComponentID(m.componentID), logfields.Path(root))
	return nil
}

// Path returns the workspace root, empty until Create succeeds.
func (m *Manager) Path() string { return m.root }

// SrcDir returns the source subtree path.
func (m *Manager) SrcDir() string { return filepath.Join(m.root, SrcDirName) }

// DistDir returns the build output subtree path.
func (m *Manager) DistDir() string { return filepath.Join(m.root, DistDirName) }

// Cleanup removes the entire workspace tree. Safe to call when Create never
// ran. The returned error is for logging only; callers must not let it
// override a build's result.
func (m *Manager) Cleanup() error {
	if m.root == "" {
		return nil
	}
	if err := os.RemoveAll(m.root); err != nil {
		return errors.WrapCleanup(err, "failed to remove workspace").
			WithContext("path", m.root)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.root))
	m.root = ""
	return nil
}

// copyTree recursively copies the directory tree at src to dst, preserving
// the relative layout. Symlinks in the skeleton are not followed.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path is inside the skeleton
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o640)
	})
}
