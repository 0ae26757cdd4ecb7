// File: internal/evaluation/evaluator.go

// Package evaluation implements the prompt evaluation pipeline: goal
// resolution and the operations that judge, score, test and execute a
// prompt through a single ResponseClient collaborator.
//
// The package holds no state beyond its collaborator, caches nothing across
// calls, and does no logging of its own; observability belongs to the
// hosting layer and to the client implementation.
package evaluation

import (
	"context"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/contract"
)

// Evaluator runs the six operations against one ResponseClient. Each
// invocation is independent: one operation issues at most two sequential
// client calls (goal inference, then the main instruction) and shares
// nothing with concurrent invocations.
type Evaluator struct {
	client    schemas.ResponseClient
	maxTokens int
}

// NewEvaluator builds an evaluator over the given client. maxOutputTokens
// bounds every model reply; zero or negative selects the default budget.
func NewEvaluator(client schemas.ResponseClient, maxOutputTokens int) *Evaluator {
	if maxOutputTokens <= 0 {
		maxOutputTokens = schemas.DefaultMaxOutputTokens
	}
	return &Evaluator{client: client, maxTokens: maxOutputTokens}
}

func (e *Evaluator) respond(ctx context.Context, model, instruction string) (string, error) {
	return e.client.Respond(ctx, schemas.GenerationRequest{
		Model:           model,
		Instruction:     instruction,
		MaxOutputTokens: e.maxTokens,
	})
}

// InferGoal asks the judge for the prompt's likely goal. Inference never
// hard-fails on a malformed reply: the contract parser falls back to the
// trimmed raw text, because some goal always beats no goal.
func (e *Evaluator) InferGoal(ctx context.Context, prompt string, judge schemas.JudgeModel) (string, error) {
	if err := judge.Validate(); err != nil {
		return "", err
	}
	raw, err := e.respond(ctx, string(judge), goalInferenceInstruction(prompt))
	if err != nil {
		return "", err
	}
	return contract.Goal(raw), nil
}

// ResolveGoal returns the supplied goal unchanged when it is non-empty,
// otherwise infers one. The boolean reports whether inference ran. Nothing
// is cached: every operation that needs a goal and was not given one
// resolves it again, so callers wanting a stable goal across operations
// must resolve once and pass it explicitly.
func (e *Evaluator) ResolveGoal(ctx context.Context, prompt string, judge schemas.JudgeModel, supplied string) (string, bool, error) {
	if supplied != "" {
		return supplied, false, nil
	}
	goal, err := e.InferGoal(ctx, prompt, judge)
	if err != nil {
		return "", false, err
	}
	return goal, true, nil
}

// AnalyzeFragments splits the prompt into typed fragments scored for goal
// alignment. goal may be empty, in which case it is inferred first.
func (e *Evaluator) AnalyzeFragments(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.Fragment, error) {
	if err := judge.Validate(); err != nil {
		return nil, err
	}
	goal, _, err := e.ResolveGoal(ctx, prompt, judge, goal)
	if err != nil {
		return nil, err
	}
	raw, err := e.respond(ctx, string(judge), fragmentAnalysisInstruction(prompt, goal))
	if err != nil {
		return nil, err
	}
	return contract.Fragments(raw)
}

// AnalyzeLogs produces diagnostic log entries about the prompt relative to
// its goal.
func (e *Evaluator) AnalyzeLogs(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) ([]schemas.LogEntry, error) {
	if err := judge.Validate(); err != nil {
		return nil, err
	}
	goal, _, err := e.ResolveGoal(ctx, prompt, judge, goal)
	if err != nil {
		return nil, err
	}
	raw, err := e.respond(ctx, string(judge), logAnalysisInstruction(prompt, goal))
	if err != nil {
		return nil, err
	}
	return contract.Logs(raw)
}

// AnalyzePrompt produces the overall effectiveness verdict. The instruction
// labels the goal as provided or inferred so the judge echoes that
// provenance into the typed record.
func (e *Evaluator) AnalyzePrompt(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.PromptAnalysis, error) {
	if err := judge.Validate(); err != nil {
		return nil, err
	}
	goal, inferred, err := e.ResolveGoal(ctx, prompt, judge, goal)
	if err != nil {
		return nil, err
	}
	raw, err := e.respond(ctx, string(judge), promptAnalysisInstruction(prompt, goal, inferred))
	if err != nil {
		return nil, err
	}
	return contract.Analysis(raw)
}

// GenerateTest synthesizes one test case. The prompt's {name} placeholders
// are listed in the instruction so the judge knows which keys the input
// mapping must contain.
func (e *Evaluator) GenerateTest(ctx context.Context, prompt string, judge schemas.JudgeModel, goal string) (*schemas.TestCase, error) {
	if err := judge.Validate(); err != nil {
		return nil, err
	}
	goal, _, err := e.ResolveGoal(ctx, prompt, judge, goal)
	if err != nil {
		return nil, err
	}
	raw, err := e.respond(ctx, string(judge), testGenerationInstruction(prompt, goal, Placeholders(prompt)))
	if err != nil {
		return nil, err
	}
	return contract.Test(raw)
}

// ExecutePrompt runs the prompt against a target model and returns the reply
// verbatim. Execution is not an evaluation: no goal, no contract, no parsing.
func (e *Evaluator) ExecutePrompt(ctx context.Context, prompt string, target schemas.TargetModel) (string, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	return e.respond(ctx, string(target), prompt)
}
