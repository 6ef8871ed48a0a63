package build

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/workspace"
)

// Fixed filenames inside the src subtree.
const (
	ComponentFileName  = "UserComponent.tsx"
	EntryPointFileName = "index.tsx"
	StylesheetFileName = "globals.css"
)

// entryPoint mounts the user component into the root DOM node and pulls in
// the seeded global stylesheet. Generated deterministically for every build.
const entryPoint = `import React from 'react';
import ReactDOM from 'react-dom/client';
import UserComponent from './UserComponent';
import './globals.css';

const rootEl = document.getElementById('root');
if (rootEl) ReactDOM.createRoot(rootEl).render(<UserComponent />);
`

// SourceInjector writes the user code and the generated entry point into a
// workspace's src subtree.
type SourceInjector struct {
	ws *workspace.Manager
}

// NewSourceInjector creates an injector bound to one workspace.
func NewSourceInjector(ws *workspace.Manager) *SourceInjector {
	return &SourceInjector{ws: ws}
}

// Inject writes the component source verbatim, seeds the global stylesheet
// from the skeleton, and generates the entry point. The source is opaque
// text here; semantic validation is the bundler's job.
func (i *SourceInjector) Inject(sourceCode string) error {
	src := i.ws.SrcDir()

	if err := os.WriteFile(filepath.Join(src, ComponentFileName), []byte(sourceCode), 0o640); err != nil {
		return errors.WrapWorkspace(err, "failed to write component file")
	}

	if err := i.seedStylesheet(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(src, EntryPointFileName), []byte(entryPoint), 0o640); err != nil {
		return errors.WrapWorkspace(err, "failed to write entry point")
	}
	return nil
}

// seedStylesheet copies the skeleton's top-level globals.css next to the
// entry point so the bundler and the CSS processor read the same input.
func (i *SourceInjector) seedStylesheet() error {
	source := filepath.Join(i.ws.Path(), StylesheetFileName)
	dest := filepath.Join(i.ws.SrcDir(), StylesheetFileName)

	data, err := os.ReadFile(source) // #nosec G304 -- path is inside the workspace
	if err != nil {
		return errors.WrapWorkspace(err, "failed to read seeded stylesheet").
			WithContext("path", source)
	}
	if err := os.WriteFile(dest, data, 0o640); err != nil {
		return errors.WrapWorkspace(err, "failed to copy stylesheet into src")
	}
	return nil
}
