package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/siddlokray/cortica/pkg/buildinfo"
	"github.com/siddlokray/cortica/pkg/connectivity"
	"github.com/siddlokray/cortica/pkg/errors"
	"github.com/siddlokray/cortica/pkg/matio"
	"github.com/siddlokray/cortica/pkg/pipeline"
	"github.com/siddlokray/cortica/pkg/store"
)

// AnalyzeRequest is the POST /v1/analyze body. Exactly one of Matrix and
// URL supplies the input.
type AnalyzeRequest struct {
	// Matrix is the correlation matrix to analyze.
	Matrix *connectivity.Matrix `json:"matrix,omitempty"`

	// URL fetches the matrix from a remote CSV/TSV/JSON file instead.
	URL string `json:"url,omitempty"`

	// Options configures the pipeline. Zero values take the defaults.
	Options pipeline.Options `json:"options"`

	// Artifact names a single "kind.format" artifact to return raw with
	// its content type instead of the JSON response.
	Artifact string `json:"artifact,omitempty"`
}

// AnalyzeResponse is the JSON result of an analyze call. Artifact bytes are
// base64-encoded by the JSON marshaller.
type AnalyzeResponse struct {
	RunID      string             `json:"run_id,omitempty"`
	MatrixHash string             `json:"matrix_hash"`
	GraphHash  string             `json:"graph_hash"`
	Analysis   pipeline.Analysis  `json:"analysis"`
	Network    store.NetworkStats `json:"network"`
	Artifacts  map[string][]byte  `json:"artifacts,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	ctx := r.Context()

	var m connectivity.Matrix
	switch {
	case req.Matrix != nil && req.URL != "":
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "provide either matrix or url, not both"))
		return
	case req.Matrix != nil:
		m = *req.Matrix
	case req.URL != "":
		fetched, err := matio.FetchMatrix(ctx, req.URL, nil)
		if err != nil {
			writeError(w, err)
			return
		}
		m = fetched
	default:
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "request has no matrix"))
		return
	}

	if req.Artifact != "" && !knownArtifact(req.Artifact, req.Options) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"artifact %q is not among the requested kinds and formats", req.Artifact))
		return
	}

	result, err := s.runner.Execute(ctx, m, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := AnalyzeResponse{
		MatrixHash: result.MatrixHash,
		GraphHash:  result.GraphHash,
		Analysis:   result.Analysis,
		Artifacts:  result.Artifacts,
		Network: store.NetworkStats{
			Threshold: result.Layout.Graph.Threshold,
			Nodes:     len(result.Layout.Graph.Nodes),
			Edges:     len(result.Layout.Graph.Edges),
			Density:   result.Layout.Graph.Density(),
		},
	}

	if s.store != nil {
		source := req.URL
		if source == "" {
			source = "api"
		}
		run := store.NewRun(source, m, req.Options, result)
		if err := s.store.Put(ctx, run); err != nil {
			s.logger.Error("record run", "err", err)
		} else {
			resp.RunID = run.ID
		}
	}

	if req.Artifact != "" {
		data, ok := result.Artifacts[req.Artifact]
		if !ok {
			writeError(w, errors.New(errors.ErrCodeNotFound, "artifact %q was not produced", req.Artifact))
			return
		}
		w.Header().Set("Content-Type", contentTypeFor(req.Artifact))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeRunNotFound, "run history is not configured"))
		return
	}
	runs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeRunNotFound, "run history is not configured"))
		return
	}
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeRunNotFound, "run history is not configured"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// knownArtifact reports whether the named artifact will exist for the
// requested kinds and formats, after defaults.
func knownArtifact(name string, opts pipeline.Options) bool {
	if err := opts.ValidateForRender(); err != nil {
		// Let Execute surface the validation error.
		return true
	}
	for _, kind := range opts.Kinds {
		for _, format := range opts.Formats {
			if pipeline.ArtifactName(kind, format) == name {
				return true
			}
		}
	}
	return false
}

// contentTypeFor maps an artifact name to its MIME type.
func contentTypeFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	default:
		return "application/json"
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the JSON
// error body.
func writeError(w http.ResponseWriter, err error) {
	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	resp.Error.Message = errors.UserMessage(err)
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, httpStatus(errors.GetCode(err)), resp)
}

// httpStatus maps error codes onto HTTP statuses.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeRunNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	default:
		// All INVALID_* codes and UNSUPPORTED are client errors.
		return http.StatusBadRequest
	}
}
