package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("build_bundle", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("publish", ResultSuccess)
	r.IncBuildOutcome("success")
	r.IncArtifactsPublished(3)
	r.IncCleanupFailure()
}

func TestPrometheusRecorderCounters(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncStageResult("build_bundle", ResultFailed)
	r.IncStageResult("build_bundle", ResultFailed)
	r.IncBuildOutcome("failed")
	r.IncArtifactsPublished(3)
	r.IncCleanupFailure()

	if got := testutil.ToFloat64(r.stageResults.WithLabelValues("build_bundle", "failed")); got != 2 {
		t.Errorf("stage_results_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.buildOutcome.WithLabelValues("failed")); got != 1 {
		t.Errorf("build_outcomes_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.artifactsPublished); got != 3 {
		t.Errorf("artifacts_published_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.cleanupFailures); got != 1 {
		t.Errorf("workspace_cleanup_failures_total = %v, want 1", got)
	}
}

func TestPrometheusRecorderNilReceiverIsSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.ObserveStageDuration("x", time.Second)
	r.IncStageResult("x", ResultSuccess)
	r.IncBuildOutcome("success")
	r.IncArtifactsPublished(1)
	r.IncCleanupFailure()
}
