// Package pipeline sequences one build from workspace creation through
// artifact publication. The workspace is torn down on every exit path; the
// teardown result never overrides the build's result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/previewbuilder/internal/build"
	"git.home.luguber.info/inful/previewbuilder/internal/config"
	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/logfields"
	"git.home.luguber.info/inful/previewbuilder/internal/metrics"
	"git.home.luguber.info/inful/previewbuilder/internal/publish"
	"git.home.luguber.info/inful/previewbuilder/internal/toolrunner"
	"git.home.luguber.info/inful/previewbuilder/internal/workspace"
)

// Stage names, in execution order.
const (
	StageCreateWorkspace = "create_workspace"
	StageInjectSource    = "inject_source"
	StageBuildBundle     = "build_bundle"
	StageBuildStyles     = "build_styles"
	StageComposeHTML     = "compose_html"
	StagePublish         = "publish"
)

// Request is one build job: a component identifier and its source snippet.
type Request struct {
	ComponentID string
	SourceCode  string
}

// Result carries the public URLs of a published build.
type Result struct {
	RenderURL   string
	OriginalURL string
	// Keys are the published object storage keys, in upload order.
	Keys []string
}

// Pipeline executes builds. Construct once and share; each Run owns its own
// workspace, so concurrent invocations are independent.
type Pipeline struct {
	cfg       *config.Config
	runner    toolrunner.Runner
	publisher publish.Publisher
	recorder  metrics.Recorder
}

// New wires a pipeline. A nil recorder disables metrics.
func New(cfg *config.Config, runner toolrunner.Runner, publisher publish.Publisher, recorder metrics.Recorder) *Pipeline {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Pipeline{cfg: cfg, runner: runner, publisher: publisher, recorder: recorder}
}

// buildState carries mutable state across stages of one run.
type buildState struct {
	ws      *workspace.Manager
	keys    []string
	timings map[string]time.Duration
}

// stage is a discrete unit of work in the build.
type stage struct {
	name string
	fn   func(ctx context.Context, bs *buildState) error
}

// Run executes the full build for one request. Every stage transitions only
// on success of the prior; the first failure aborts, and the workspace is
// removed before control returns regardless of outcome. Cleanup failure is
// logged, counted, and discarded.
func (p *Pipeline) Run(ctx context.Context, req Request) (res *Result, err error) {
	if verr := ValidateComponentID(req.ComponentID); verr != nil {
		return nil, verr
	}

	start := time.Now()
	bs := &buildState{
		ws:      workspace.NewManager(req.ComponentID, p.cfg.WorkspaceBase, p.cfg.TemplatesDir()),
		timings: make(map[string]time.Duration),
	}

	defer func() {
		if cerr := bs.ws.Cleanup(); cerr != nil {
			// Best effort only: the build's correctness does not depend on
			// cleanup succeeding, so the original result stands.
			p.recorder.IncCleanupFailure()
			slog.Error("Workspace cleanup failed",
				logfields.ComponentID(req.ComponentID),
				logfields.Error(cerr))
		}
		p.recorder.ObserveBuildDuration(time.Since(start))
		outcome := "success"
		if err != nil {
			outcome = "failed"
		}
		p.recorder.IncBuildOutcome(outcome)
	}()

	injector := build.NewSourceInjector(bs.ws)
	bundler := build.NewBundleBuilder(p.runner, p.cfg.Tools.Bundler)
	styler := build.NewStyleBuilder(p.runner, p.cfg.Tools.Bundler, p.cfg.Tools.CSSProcessor)
	composer := build.NewHTMLComposer()

	stages := []stage{
		{StageCreateWorkspace, func(ctx context.Context, bs *buildState) error {
			return bs.ws.Create()
		}},
		{StageInjectSource, func(ctx context.Context, bs *buildState) error {
			return injector.Inject(req.SourceCode)
		}},
		{StageBuildBundle, func(ctx context.Context, bs *buildState) error {
			return bundler.Build(ctx, bs.ws)
		}},
		{StageBuildStyles, func(ctx context.Context, bs *buildState) error {
			return styler.Build(ctx, bs.ws)
		}},
		{StageComposeHTML, func(ctx context.Context, bs *buildState) error {
			return composer.Compose(bs.ws)
		}},
		{StagePublish, func(ctx context.Context, bs *buildState) error {
			artifacts, aerr := publish.CollectArtifacts(bs.ws.DistDir())
			if aerr != nil {
				return aerr
			}
			keys, perr := p.publisher.Publish(ctx, req.ComponentID, artifacts)
			if perr != nil {
				return perr
			}
			bs.keys = keys
			p.recorder.IncArtifactsPublished(len(keys))
			return nil
		}},
	}

	if err := p.runStages(ctx, req.ComponentID, bs, stages); err != nil {
		return nil, err
	}

	slog.Info("Build published",
		logfields.ComponentID(req.ComponentID),
		slog.Int("artifacts", len(bs.keys)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	return &Result{
		RenderURL:   fmt.Sprintf("https://%s.%s/index.html", req.ComponentID, p.cfg.PreviewDomain),
		OriginalURL: fmt.Sprintf("https://%s/%s/index.html", p.cfg.DistributionDomain, req.ComponentID),
		Keys:        bs.keys,
	}, nil
}

// runStages executes stages in order, recording timing and stopping on the
// first error. Context cancellation is honored between stages; the external
// tools themselves are bounded by whatever deadline ctx carries.
func (p *Pipeline) runStages(ctx context.Context, componentID string, bs *buildState, stages []stage) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return errors.WrapInternal(ctx.Err(), "build canceled before "+st.name)
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.timings[st.name] = dur
		p.recorder.ObserveStageDuration(st.name, dur)

		if err != nil {
			p.recorder.IncStageResult(st.name, metrics.ResultFailed)
			slog.Warn("Build stage failed",
				logfields.ComponentID(componentID),
				logfields.Stage(st.name),
				logfields.Error(err))
			return err
		}
		p.recorder.IncStageResult(st.name, metrics.ResultSuccess)
		slog.Debug("Build stage completed",
			logfields.ComponentID(componentID),
			logfields.Stage(st.name),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}
