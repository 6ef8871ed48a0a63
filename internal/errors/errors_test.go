package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildErrorRendering(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapWorkspace(cause, "failed to create src directory")

	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("expected cause in rendering, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestBuildToolErrorCarriesStderr(t *testing.T) {
	err := BuildToolError("bun", 1, "SyntaxError: unexpected token")

	if !strings.Contains(err.Error(), "SyntaxError") {
		t.Errorf("stderr missing from message: %q", err.Error())
	}
	if err.Context["exit_code"] != 1 {
		t.Errorf("expected exit_code context, got %v", err.Context["exit_code"])
	}
	if !IsCategory(err, CategoryBuildTool) {
		t.Error("expected buildtool category")
	}
}

func TestIsCategoryThroughWrapping(t *testing.T) {
	inner := InputError("unexpected end of JSON input")
	outer := fmt.Errorf("handling request: %w", inner)

	if !IsCategory(outer, CategoryInput) {
		t.Error("category should survive fmt.Errorf wrapping")
	}
	if IsCategory(errors.New("plain"), CategoryInput) {
		t.Error("plain errors have no category")
	}
}

func TestStatusCodeMapping(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{InputError("bad json"), http.StatusBadRequest},
		{WorkspaceError("mkdir failed"), http.StatusInternalServerError},
		{BuildToolError("bun", 1, "boom"), http.StatusInternalServerError},
		{WrapPublish(errors.New("timeout"), "upload failed"), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := adapter.StatusCodeFor(tc.err); got != tc.want {
			t.Errorf("StatusCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWriteErrorResponseBodyContainsDiagnostics(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()

	adapter.WriteErrorResponse(rec, BuildToolError("bun", 1, "SyntaxError: ..."))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SyntaxError") {
		t.Errorf("response body should contain captured stderr, got %s", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
}
