// File: internal/contract/parser.go

// Package contract interprets raw judge-model replies as one of the fixed
// JSON shapes the instruction templates ask for. The parse policy is
// deliberately asymmetric: goal inference falls back to the trimmed raw text
// on any failure, because an imperfect goal is still a usable goal, while
// fragments, logs, overall analysis and test cases hard-fail, because a
// partially parsed scored record is worthless to downstream consumers.
//
// Replies are parsed as-is. A response wrapped in prose or markdown fencing
// is not valid JSON and is treated as a parse failure, never salvaged.
package contract

import (
	"fmt"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// Operation names carried inside AnalysisParseError.
const (
	OpFragmentAnalysis = "fragment analysis"
	OpLogAnalysis      = "log analysis"
	OpPromptAnalysis   = "prompt analysis"
	OpTestGeneration   = "test generation"
)

// Goal extracts the "goal" value from a goal-inference reply. On any decode
// failure, or when the key is absent, it returns the raw text with
// surrounding whitespace trimmed. This is the sole soft-fail path in the
// parser.
func Goal(raw string) string {
	var payload struct {
		Goal *string `json:"goal"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Goal == nil {
		return strings.TrimSpace(raw)
	}
	return *payload.Goal
}

type fragmentPayload struct {
	Text                  *string               `json:"text"`
	Kind                  *schemas.FragmentKind `json:"type"`
	GoalAlignment         *int                  `json:"goal_alignment"`
	ImprovementSuggestion *string               `json:"improvement_suggestion"`
}

// Fragments decodes a `{"fragments": [...]}` reply into typed fragments.
// A reply that is not valid JSON, lacks the top-level key, or carries a
// fragment with a missing field fails with AnalysisParseError.
func Fragments(raw string) ([]schemas.Fragment, error) {
	var payload struct {
		Fragments *[]fragmentPayload `json:"fragments"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, parseError(OpFragmentAnalysis, err)
	}
	if payload.Fragments == nil {
		return nil, missingKey(OpFragmentAnalysis, "fragments")
	}

	fragments := make([]schemas.Fragment, len(*payload.Fragments))
	for i, f := range *payload.Fragments {
		if f.Text == nil || f.Kind == nil || f.GoalAlignment == nil || f.ImprovementSuggestion == nil {
			return nil, parseError(OpFragmentAnalysis,
				fmt.Errorf("fragment %d is missing a required field", i))
		}
		fragments[i] = schemas.Fragment{
			Text:                  *f.Text,
			Kind:                  *f.Kind,
			GoalAlignment:         *f.GoalAlignment,
			ImprovementSuggestion: *f.ImprovementSuggestion,
		}
	}
	return fragments, nil
}

type logPayload struct {
	Kind    *schemas.LogKind `json:"type"`
	Message *string          `json:"message"`
}

// Logs decodes a `{"logs": [...]}` reply into typed log entries.
func Logs(raw string) ([]schemas.LogEntry, error) {
	var payload struct {
		Logs *[]logPayload `json:"logs"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, parseError(OpLogAnalysis, err)
	}
	if payload.Logs == nil {
		return nil, missingKey(OpLogAnalysis, "logs")
	}

	logs := make([]schemas.LogEntry, len(*payload.Logs))
	for i, l := range *payload.Logs {
		if l.Kind == nil || l.Message == nil {
			return nil, parseError(OpLogAnalysis,
				fmt.Errorf("log %d is missing a required field", i))
		}
		logs[i] = schemas.LogEntry{Kind: *l.Kind, Message: *l.Message}
	}
	return logs, nil
}

// Analysis decodes the flattened PromptAnalysis shape. The three scored
// fields are required; inferred_goal and is_goal_inferred are optional
// because the judge echoes them only when the goal was inferred.
func Analysis(raw string) (*schemas.PromptAnalysis, error) {
	var payload struct {
		OverallGoalAlignment   *int      `json:"overall_goal_alignment"`
		SuggestedImprovements  *[]string `json:"suggested_improvements"`
		EstimatedEffectiveness *int      `json:"estimated_effectiveness"`
		InferredGoal           string    `json:"inferred_goal"`
		IsGoalInferred         bool      `json:"is_goal_inferred"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, parseError(OpPromptAnalysis, err)
	}
	switch {
	case payload.OverallGoalAlignment == nil:
		return nil, missingKey(OpPromptAnalysis, "overall_goal_alignment")
	case payload.SuggestedImprovements == nil:
		return nil, missingKey(OpPromptAnalysis, "suggested_improvements")
	case payload.EstimatedEffectiveness == nil:
		return nil, missingKey(OpPromptAnalysis, "estimated_effectiveness")
	}

	return &schemas.PromptAnalysis{
		OverallGoalAlignment:   *payload.OverallGoalAlignment,
		SuggestedImprovements:  *payload.SuggestedImprovements,
		EstimatedEffectiveness: *payload.EstimatedEffectiveness,
		InferredGoal:           payload.InferredGoal,
		IsGoalInferred:         payload.IsGoalInferred,
	}, nil
}

// Test decodes the TestCase shape. All three fields are required; the input
// mapping may legitimately be empty for a prompt without placeholders.
func Test(raw string) (*schemas.TestCase, error) {
	var payload struct {
		Input          *map[string]string `json:"input"`
		ExpectedOutput *string            `json:"expected_output"`
		GoalRelevance  *int               `json:"goal_relevance"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, parseError(OpTestGeneration, err)
	}
	switch {
	case payload.Input == nil:
		return nil, missingKey(OpTestGeneration, "input")
	case payload.ExpectedOutput == nil:
		return nil, missingKey(OpTestGeneration, "expected_output")
	case payload.GoalRelevance == nil:
		return nil, missingKey(OpTestGeneration, "goal_relevance")
	}

	return &schemas.TestCase{
		Input:          *payload.Input,
		ExpectedOutput: *payload.ExpectedOutput,
		GoalRelevance:  *payload.GoalRelevance,
	}, nil
}

func parseError(op string, err error) error {
	return &schemas.AnalysisParseError{Operation: op, Err: err}
}

func missingKey(op, key string) error {
	return parseError(op, fmt.Errorf("missing required key %q", key))
}
