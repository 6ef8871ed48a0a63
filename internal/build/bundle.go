package build

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/logfields"
	"git.home.luguber.info/inful/previewbuilder/internal/toolrunner"
	"git.home.luguber.info/inful/previewbuilder/internal/workspace"
)

// Compiled artifact names inside dist. The HTML shell references both, so
// they are fixed rather than derived from the entry point.
const (
	ScriptOutputName     = "index.js"
	StylesheetOutputName = "index.css"
)

// BundleBuilder invokes the external bundler to compile the entry point into
// a browser-targeted script bundle under dist.
type BundleBuilder struct {
	runner  toolrunner.Runner
	bundler string
}

// NewBundleBuilder creates a builder using the configured bundler binary.
func NewBundleBuilder(runner toolrunner.Runner, bundler string) *BundleBuilder {
	return &BundleBuilder{runner: runner, bundler: bundler}
}

// Build runs the bundler inside the workspace root. Zero exit is required;
// any other exit fails with the captured stderr.
func (b *BundleBuilder) Build(ctx context.Context, ws *workspace.Manager) error {
	spec := toolrunner.Spec{
		Command: b.bundler,
		Args: []string{
			"build", "./" + workspace.SrcDirName + "/" + EntryPointFileName,
			"--outdir", "./" + workspace.DistDirName,
			"--target", "browser",
		},
		Dir: ws.Path(),
	}

	res, err := b.runner.Run(ctx, spec)
	if err != nil {
		return errors.WrapBuildTool(err, b.bundler)
	}
	if res.ExitCode != 0 {
		return errors.BuildToolError(b.bundler, res.ExitCode, res.Stderr)
	}
	slog.Debug("Bundle built", logfields.Tool(b.bundler), logfields.Path(ws.DistDir()))
	return nil
}

// StyleBuilder invokes the CSS processor to compile the seeded stylesheet
// into dist. It runs through the bundler's package runner so no separate
// toolchain installation is needed.
type StyleBuilder struct {
	runner    toolrunner.Runner
	bundler   string
	processor string
}

// NewStyleBuilder creates a builder for the configured CSS processor.
func NewStyleBuilder(runner toolrunner.Runner, bundler, processor string) *StyleBuilder {
	return &StyleBuilder{runner: runner, bundler: bundler, processor: processor}
}

// Build compiles src/globals.css into dist/index.css. Same success contract
// as the bundler: zero exit or BuildToolError with captured stderr.
func (s *StyleBuilder) Build(ctx context.Context, ws *workspace.Manager) error {
	spec := toolrunner.Spec{
		Command: s.bundler,
		Args: []string{
			"x", s.processor,
			"-i", filepath.Join(ws.SrcDir(), StylesheetFileName),
			"-o", filepath.Join(ws.DistDir(), StylesheetOutputName),
		},
		Dir: ws.Path(),
	}

	res, err := s.runner.Run(ctx, spec)
	if err != nil {
		return errors.WrapBuildTool(err, s.processor)
	}
	if res.ExitCode != 0 {
		return errors.BuildToolError(s.processor, res.ExitCode, res.Stderr)
	}
	slog.Debug("Styles built", logfields.Tool(s.processor), logfields.Path(ws.DistDir()))
	return nil
}
