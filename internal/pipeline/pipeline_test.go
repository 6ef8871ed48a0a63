package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/previewbuilder/internal/config"
	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/publish"
	"git.home.luguber.info/inful/previewbuilder/internal/toolrunner"
)

// capturePublisher records Publish calls and returns canned results.
type capturePublisher struct {
	calls       int
	componentID string
	artifacts   []publish.Artifact
	err         error
}

func (c *capturePublisher) Publish(_ context.Context, componentID string, artifacts []publish.Artifact) ([]string, error) {
	c.calls++
	c.componentID = componentID
	c.artifacts = artifacts
	if c.err != nil {
		return nil, c.err
	}
	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		keys = append(keys, componentID+"/"+a.Name)
	}
	return keys, nil
}

// testConfig builds a config rooted in temp dirs with a seeded skeleton.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Bucket = "previews"
	cfg.DistributionDomain = "d111.cloudfront.example"
	cfg.PreviewDomain = "preview.example.cloud"
	cfg.Region = "eu-north-1"
	cfg.TemplateRoot = t.TempDir()
	cfg.WorkspaceBase = t.TempDir()

	skel := cfg.TemplatesDir()
	if err := os.MkdirAll(skel, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skel, "globals.css"), []byte("@tailwind base;\n"), 0o640); err != nil {
		t.Fatal(err)
	}
	return cfg
}

// successRunner scripts both tools to succeed and write their outputs, the
// way the real binaries would.
func successRunner() *toolrunner.FakeRunner {
	fake := toolrunner.NewFakeRunner()
	fake.ScriptEffect("bun build", toolrunner.Result{}, func(spec toolrunner.Spec) {
		_ = os.WriteFile(filepath.Join(spec.Dir, "dist", "index.js"), []byte("console.log(1);"), 0o640)
	})
	fake.ScriptEffect("bun x", toolrunner.Result{}, func(spec toolrunner.Spec) {
		_ = os.WriteFile(filepath.Join(spec.Dir, "dist", "index.css"), []byte("body{}"), 0o640)
	})
	return fake
}

// assertNoWorkspaces fails if any build directory remains under the base.
func assertNoWorkspaces(t *testing.T, cfg *config.Config) {
	t.Helper()
	entries, err := os.ReadDir(cfg.WorkspaceBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("workspace leaked after pipeline returned: %v", entries)
	}
}

func TestRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	fake := successRunner()
	pub := &capturePublisher{}
	p := New(cfg, fake, pub, nil)

	res, err := p.Run(context.Background(), Request{
		ComponentID: "abc123",
		SourceCode:  "export default () => <div>hi</div>;",
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.RenderURL != "https://abc123.preview.example.cloud/index.html" {
		t.Errorf("unexpected render URL: %s", res.RenderURL)
	}
	if res.OriginalURL != "https://d111.cloudfront.example/abc123/index.html" {
		t.Errorf("unexpected original URL: %s", res.OriginalURL)
	}

	// Exactly one script, one stylesheet, one HTML document.
	if pub.calls != 1 || len(pub.artifacts) != 3 {
		t.Fatalf("expected one publish call with 3 artifacts, got %d calls, %d artifacts", pub.calls, len(pub.artifacts))
	}
	names := map[string]bool{}
	for _, a := range pub.artifacts {
		names[a.Name] = true
	}
	for _, want := range []string{"index.js", "index.css", "index.html"} {
		if !names[want] {
			t.Errorf("artifact %s missing from publish set", want)
		}
	}
	for _, key := range res.Keys {
		if !strings.HasPrefix(key, "abc123/") {
			t.Errorf("key %q not namespaced by component id", key)
		}
	}

	assertNoWorkspaces(t, cfg)
}

func TestRunBundlerRunsBeforeStyles(t *testing.T) {
	cfg := testConfig(t)
	fake := successRunner()
	p := New(cfg, fake, &capturePublisher{}, nil)

	if _, err := p.Run(context.Background(), Request{ComponentID: "abc123", SourceCode: "x"}); err != nil {
		t.Fatal(err)
	}

	if len(fake.Calls) != 2 {
		t.Fatalf("expected 2 tool invocations, got %d", len(fake.Calls))
	}
	if fake.Calls[0].Args[0] != "build" || fake.Calls[1].Args[0] != "x" {
		t.Errorf("bundler must run before CSS processor: %+v", fake.Calls)
	}
}

func TestRunBundlerFailure(t *testing.T) {
	cfg := testConfig(t)
	fake := toolrunner.NewFakeRunner()
	fake.Script("bun build", toolrunner.Result{ExitCode: 1, Stderr: "SyntaxError: unexpected token"}, nil)
	pub := &capturePublisher{}
	p := New(cfg, fake, pub, nil)

	_, err := p.Run(context.Background(), Request{ComponentID: "abc123", SourceCode: "x"})
	if !errors.IsCategory(err, errors.CategoryBuildTool) {
		t.Fatalf("expected buildtool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "SyntaxError") {
		t.Errorf("stderr missing from error: %v", err)
	}

	if pub.calls != 0 {
		t.Error("no artifacts may be published after a tool failure")
	}
	if got := fake.CallCount("bun x"); got != 0 {
		t.Errorf("CSS processor must not run after bundler failure, ran %d times", got)
	}
	assertNoWorkspaces(t, cfg)
}

func TestRunStyleFailure(t *testing.T) {
	cfg := testConfig(t)
	fake := toolrunner.NewFakeRunner()
	fake.ScriptEffect("bun build", toolrunner.Result{}, func(spec toolrunner.Spec) {
		_ = os.WriteFile(filepath.Join(spec.Dir, "dist", "index.js"), []byte(";"), 0o640)
	})
	fake.Script("bun x", toolrunner.Result{ExitCode: 2, Stderr: "unknown utility `foo`"}, nil)
	pub := &capturePublisher{}
	p := New(cfg, fake, pub, nil)

	_, err := p.Run(context.Background(), Request{ComponentID: "abc123", SourceCode: "x"})
	if !errors.IsCategory(err, errors.CategoryBuildTool) {
		t.Fatalf("expected buildtool error, got %v", err)
	}
	if pub.calls != 0 {
		t.Error("no artifacts may be published after a tool failure")
	}
	assertNoWorkspaces(t, cfg)
}

func TestRunPublishFailure(t *testing.T) {
	cfg := testConfig(t)
	pub := &capturePublisher{err: errors.WrapPublish(context.DeadlineExceeded, "upload failed")}
	p := New(cfg, successRunner(), pub, nil)

	_, err := p.Run(context.Background(), Request{ComponentID: "abc123", SourceCode: "x"})
	if !errors.IsCategory(err, errors.CategoryPublish) {
		t.Fatalf("expected publish error, got %v", err)
	}
	assertNoWorkspaces(t, cfg)
}

func TestRunRejectsUnsafeComponentID(t *testing.T) {
	cfg := testConfig(t)
	fake := successRunner()
	p := New(cfg, fake, &capturePublisher{}, nil)

	for _, id := range []string{"", "../escape", "a/b", ".hidden", strings.Repeat("x", 200)} {
		_, err := p.Run(context.Background(), Request{ComponentID: id, SourceCode: "x"})
		if !errors.IsCategory(err, errors.CategoryInput) {
			t.Errorf("id %q: expected input error, got %v", id, err)
		}
	}

	// Rejected before any workspace or tool activity.
	if len(fake.Calls) != 0 {
		t.Errorf("tools must not run for invalid ids: %+v", fake.Calls)
	}
	assertNoWorkspaces(t, cfg)
}

func TestRunCanceledContext(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(cfg, successRunner(), &capturePublisher{}, nil)

	_, err := p.Run(ctx, Request{ComponentID: "abc123", SourceCode: "x"})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	assertNoWorkspaces(t, cfg)
}

func TestValidateComponentID(t *testing.T) {
	valid := []string{"abc123", "my-component", "v1.2.3", "A_b-C.9"}
	for _, id := range valid {
		if err := ValidateComponentID(id); err != nil {
			t.Errorf("id %q should be valid: %v", id, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", "a\\b", "-lead", "_lead", ".lead", "sp ace", strings.Repeat("x", 129)}
	for _, id := range invalid {
		if err := ValidateComponentID(id); err == nil {
			t.Errorf("id %q should be rejected", id)
		}
	}
}
