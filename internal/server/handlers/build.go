package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/logfields"
	"git.home.luguber.info/inful/previewbuilder/internal/pipeline"
	"git.home.luguber.info/inful/previewbuilder/internal/server/responses"
)

// BuildRunner is the pipeline capability the handler needs; tests substitute
// a stub so handler behavior is checked without filesystem or tool activity.
type BuildRunner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// BuildRequest is the JSON request body for the build endpoint.
type BuildRequest struct {
	ComponentID string `json:"component_id"`
	Code        string `json:"code"`
}

// BuildHandlers contains build-related HTTP handlers.
type BuildHandlers struct {
	runner       BuildRunner
	errorAdapter *errors.HTTPErrorAdapter
}

// NewBuildHandlers creates a new build handlers instance.
func NewBuildHandlers(runner BuildRunner) *BuildHandlers {
	return &BuildHandlers{
		runner:       runner,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleBuild accepts a component snippet, runs the build pipeline, and
// responds with the published URLs. Malformed bodies are rejected before any
// workspace is created.
func (h *BuildHandlers) HandleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := errors.InputError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "POST")
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, errors.WrapInput(err, "failed to read request body"))
		return
	}

	var req BuildRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.errorAdapter.WriteErrorResponse(w, errors.WrapInput(err, "malformed request body"))
		return
	}

	slog.Info("Build requested", logfields.ComponentID(req.ComponentID))

	result, err := h.runner.Run(r.Context(), pipeline.Request{
		ComponentID: req.ComponentID,
		SourceCode:  req.Code,
	})
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	resp := &responses.BuildResponse{
		RenderURL:   result.RenderURL,
		OriginalURL: result.OriginalURL,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, errors.WrapInternal(err, "failed to encode build response"))
	}
}
