// File: internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// Evaluator is the slice of the evaluation pipeline the HTTP surface needs.
type Evaluator interface {
	InferGoal(ctx context.Context, prompt string, judge schemas.JudgeModel) (string, error)
	AnalyzeFragments(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.Fragment, error)
	AnalyzeLogs(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.LogEntry, error)
	AnalyzePrompt(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.PromptAnalysis, error)
	GenerateTest(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.TestCase, error)
	ExecutePrompt(ctx context.Context, prompt string, target schemas.TargetModel) (string, error)
}

// evaluationRequest is the body shared by every operation endpoint. Model
// falls back to the configured default when omitted; goal is only meaningful
// for the analysis endpoints.
type evaluationRequest struct {
	Prompt string `json:"prompt"`
	Goal   string `json:"goal,omitempty"`
	Model  string `json:"model,omitempty"`
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

// decodeRequest parses the shared body and enforces the non-empty prompt.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*evaluationRequest, bool) {
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if req.Prompt == "" {
		respondError(w, "prompt must not be empty", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// judgeFor resolves the request's model, or the configured default, against
// the judge enumeration.
func (s *Server) judgeFor(req *evaluationRequest) (schemas.JudgeModel, error) {
	name := req.Model
	if name == "" {
		name = s.defaults.JudgeModel
	}
	return schemas.ParseJudgeModel(name)
}

func (s *Server) targetFor(req *evaluationRequest) (schemas.TargetModel, error) {
	name := req.Model
	if name == "" {
		name = s.defaults.TargetModel
	}
	return schemas.ParseTargetModel(name)
}

// writeOperationError maps the pipeline's error taxonomy onto status codes.
// Identifier problems are the caller's fault; judge replies we cannot parse
// and provider failures are upstream problems, reported as a bad gateway.
func (s *Server) writeOperationError(w http.ResponseWriter, r *http.Request, err error) {
	var modelErr *schemas.UnsupportedModelError
	var parseErr *schemas.AnalysisParseError
	var provErr *schemas.ProviderError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &modelErr):
		status = http.StatusBadRequest
	case errors.As(err, &parseErr), errors.As(err, &provErr):
		status = http.StatusBadGateway
	}

	s.logger.Warn("operation failed",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	respondError(w, err.Error(), status)
}

// -- Handlers --

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}, http.StatusOK)
}

// handleModels lists both enumerations so clients can populate pickers
// without hardcoding identifiers.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string][]string{
		"target_models": schemas.TargetModels(),
		"judge_models":  schemas.JudgeModels(),
	}, http.StatusOK)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	judge, err := s.judgeFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	goal, err := s.eval.InferGoal(r.Context(), req.Prompt, judge)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"goal": goal}, http.StatusOK)
}

func (s *Server) handleFragments(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	judge, err := s.judgeFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	fragments, err := s.eval.AnalyzeFragments(r.Context(), req.Prompt, judge, req.Goal)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	if fragments == nil {
		fragments = []schemas.Fragment{}
	}
	respondJSON(w, map[string]any{"fragments": fragments}, http.StatusOK)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	judge, err := s.judgeFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	logs, err := s.eval.AnalyzeLogs(r.Context(), req.Prompt, judge, req.Goal)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	if logs == nil {
		logs = []schemas.LogEntry{}
	}
	respondJSON(w, map[string]any{"logs": logs}, http.StatusOK)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	judge, err := s.judgeFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	analysis, err := s.eval.AnalyzePrompt(r.Context(), req.Prompt, judge, req.Goal)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	respondJSON(w, analysis, http.StatusOK)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	judge, err := s.judgeFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	tc, err := s.eval.GenerateTest(r.Context(), req.Prompt, judge, req.Goal)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	respondJSON(w, tc, http.StatusOK)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	target, err := s.targetFor(req)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}

	output, err := s.eval.ExecutePrompt(r.Context(), req.Prompt, target)
	if err != nil {
		s.writeOperationError(w, r, err)
		return
	}
	respondJSON(w, map[string]string{"output": output}, http.StatusOK)
}
