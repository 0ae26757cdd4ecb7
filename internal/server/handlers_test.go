package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
)

// MockEvaluator is a mock implementation of the Evaluator interface.
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) InferGoal(ctx context.Context, prompt string, judge schemas.JudgeModel) (string, error) {
	args := m.Called(ctx, prompt, judge)
	return args.String(0), args.Error(1)
}

func (m *MockEvaluator) AnalyzeFragments(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.Fragment, error) {
	args := m.Called(ctx, prompt, judge, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schemas.Fragment), args.Error(1)
}

func (m *MockEvaluator) AnalyzeLogs(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.LogEntry, error) {
	args := m.Called(ctx, prompt, judge, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schemas.LogEntry), args.Error(1)
}

func (m *MockEvaluator) AnalyzePrompt(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.PromptAnalysis, error) {
	args := m.Called(ctx, prompt, judge, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.PromptAnalysis), args.Error(1)
}

func (m *MockEvaluator) GenerateTest(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.TestCase, error) {
	args := m.Called(ctx, prompt, judge, goal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schemas.TestCase), args.Error(1)
}

func (m *MockEvaluator) ExecutePrompt(ctx context.Context, prompt string, target schemas.TargetModel) (string, error) {
	args := m.Called(ctx, prompt, target)
	return args.String(0), args.Error(1)
}

// newTestServer wires a server with generous rate limits so only the
// dedicated test exercises 429s.
func newTestServer(t *testing.T) (*Server, *MockEvaluator) {
	t.Helper()
	eval := new(MockEvaluator)
	cfg := config.ServerConfig{
		Addr:           ":0",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	defaults := config.EvaluationConfig{
		JudgeModel:  string(schemas.JudgeGPT4),
		TargetModel: string(schemas.TargetGPT4),
	}
	return NewServer(cfg, defaults, eval, zaptest.NewLogger(t)), eval
}

func doPost(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// -- Test Cases: Operation Endpoints --

func TestHandleGoal_Success(t *testing.T) {
	s, eval := newTestServer(t)
	eval.On("InferGoal", mock.Anything, "Summarize {article}", schemas.JudgeGPT4).
		Return("Summarize articles", nil).Once()

	rec := doPost(t, s, "/api/v1/goal", map[string]string{"prompt": "Summarize {article}"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Summarize articles", decodeBody(t, rec)["goal"])
	eval.AssertExpectations(t)
}

// An omitted model falls back to the configured default judge.
func TestHandleGoal_DefaultModel(t *testing.T) {
	s, eval := newTestServer(t)
	eval.On("InferGoal", mock.Anything, "p", schemas.JudgeGPT4).Return("g", nil).Once()

	rec := doPost(t, s, "/api/v1/goal", map[string]string{"prompt": "p"})

	require.Equal(t, http.StatusOK, rec.Code)
	eval.AssertExpectations(t)
}

func TestHandleGoal_ExplicitModel(t *testing.T) {
	s, eval := newTestServer(t)
	eval.On("InferGoal", mock.Anything, "p", schemas.JudgeClaude3Opus).Return("g", nil).Once()

	rec := doPost(t, s, "/api/v1/goal", map[string]string{
		"prompt": "p",
		"model":  string(schemas.JudgeClaude3Opus),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	eval.AssertExpectations(t)
}

func TestHandleFragments_Success(t *testing.T) {
	s, eval := newTestServer(t)
	fragments := []schemas.Fragment{
		{Text: "Summarize {article}", Kind: schemas.FragmentInstruction, GoalAlignment: 5, ImprovementSuggestion: "none"},
	}
	eval.On("AnalyzeFragments", mock.Anything, "Summarize {article}", schemas.JudgeGPT4, "Be concise").
		Return(fragments, nil).Once()

	rec := doPost(t, s, "/api/v1/fragments", map[string]string{
		"prompt": "Summarize {article}",
		"goal":   "Be concise",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Len(t, body["fragments"], 1)
	eval.AssertExpectations(t)
}

func TestHandleLogs_EmptyListIsNotNull(t *testing.T) {
	s, eval := newTestServer(t)
	eval.On("AnalyzeLogs", mock.Anything, "p", schemas.JudgeGPT4, "").
		Return([]schemas.LogEntry{}, nil).Once()

	rec := doPost(t, s, "/api/v1/logs", map[string]string{"prompt": "p"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"logs":[]`)
}

func TestHandleAnalyze_Success(t *testing.T) {
	s, eval := newTestServer(t)
	analysis := &schemas.PromptAnalysis{
		OverallGoalAlignment:   7,
		SuggestedImprovements:  []string{"add examples"},
		EstimatedEffectiveness: 6,
		InferredGoal:           "Summarize articles",
		IsGoalInferred:         true,
	}
	eval.On("AnalyzePrompt", mock.Anything, "p", schemas.JudgeGPT4, "").
		Return(analysis, nil).Once()

	rec := doPost(t, s, "/api/v1/analyze", map[string]string{"prompt": "p"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(7), body["overall_goal_alignment"])
	assert.Equal(t, true, body["is_goal_inferred"])
}

func TestHandleTest_Success(t *testing.T) {
	s, eval := newTestServer(t)
	tc := &schemas.TestCase{
		Input:          map[string]string{"article": "some text"},
		ExpectedOutput: "a summary",
		GoalRelevance:  5,
	}
	eval.On("GenerateTest", mock.Anything, "Summarize {article}", schemas.JudgeGPT4, "").
		Return(tc, nil).Once()

	rec := doPost(t, s, "/api/v1/test", map[string]string{"prompt": "Summarize {article}"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "a summary", body["expected_output"])
}

func TestHandleExecute_Success(t *testing.T) {
	s, eval := newTestServer(t)
	eval.On("ExecutePrompt", mock.Anything, "Write a haiku", schemas.TargetGPT4).
		Return("a haiku", nil).Once()

	rec := doPost(t, s, "/api/v1/execute", map[string]string{"prompt": "Write a haiku"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a haiku", decodeBody(t, rec)["output"])
	eval.AssertExpectations(t)
}

// -- Test Cases: Validation & Error Mapping --

func TestHandlers_EmptyPrompt(t *testing.T) {
	s, eval := newTestServer(t)

	for _, path := range []string{
		"/api/v1/goal", "/api/v1/fragments", "/api/v1/logs",
		"/api/v1/analyze", "/api/v1/test", "/api/v1/execute",
	} {
		t.Run(path, func(t *testing.T) {
			rec := doPost(t, s, path, map[string]string{"prompt": ""})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	eval.AssertNotCalled(t, "InferGoal", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlers_MalformedBody(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/goal", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// An identifier outside the enumeration is rejected before the evaluator runs.
func TestHandlers_UnsupportedModel(t *testing.T) {
	s, eval := newTestServer(t)

	rec := doPost(t, s, "/api/v1/goal", map[string]string{
		"prompt": "p",
		"model":  "gpt-5-imaginary",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "unsupported judge model")
	eval.AssertNotCalled(t, "InferGoal", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "Parse Failure Is Bad Gateway",
			err:            &schemas.AnalysisParseError{Operation: "fragment analysis", Err: errors.New("missing key")},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "Provider Failure Is Bad Gateway",
			err:            &schemas.ProviderError{Provider: "openai", Err: errors.New("status 500")},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "Unknown Failure Is Internal",
			err:            errors.New("something odd"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, eval := newTestServer(t)
			eval.On("AnalyzeFragments", mock.Anything, "p", schemas.JudgeGPT4, "").
				Return(nil, tt.err).Once()

			rec := doPost(t, s, "/api/v1/fragments", map[string]string{"prompt": "p"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

// -- Test Cases: Utility Endpoints --

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestHandleModels(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["target_models"], len(schemas.TargetModels()))
	assert.Len(t, body["judge_models"], len(schemas.JudgeModels()))
	assert.Contains(t, body["judge_models"], string(schemas.JudgeGemini15Pro))
}
