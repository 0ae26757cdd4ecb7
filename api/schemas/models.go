package schemas

import "sort"

// -- Model Identifier Schemas --

// ModelRole distinguishes the two jobs a model can hold in the pipeline.
// Target models execute prompts and produce end-user output; judge models
// evaluate, score, or infer structure from a prompt. The two enumerations
// carry the same values today but are kept separate so a deployment can
// restrict one list without touching the other.
type ModelRole string

const (
	RoleTarget ModelRole = "target"
	RoleJudge  ModelRole = "judge"
)

// TargetModel identifies an LLM that may be used to execute a prompt.
type TargetModel string

// JudgeModel identifies an LLM trusted to evaluate or score a prompt.
type JudgeModel string

const (
	TargetClaude3Opus   TargetModel = "claude-3-opus-20240229"
	TargetClaude3Sonnet TargetModel = "claude-3-sonnet-20240229"
	TargetClaude3Haiku  TargetModel = "claude-3-haiku-20240307"
	TargetGPT4          TargetModel = "gpt-4o"
	TargetGPT4Turbo     TargetModel = "gpt-4-turbo"
	TargetGPT35Turbo    TargetModel = "gpt-3.5-turbo"
	TargetGroqLlama370B TargetModel = "groq/llama3-70b-8192"
	TargetGroqMixtral   TargetModel = "groq/mixtral-8x7b-32768"
	TargetGroqGemma7B   TargetModel = "groq/gemma-7b-it"
	TargetGemini15Pro   TargetModel = "gemini-1.5-pro"
	TargetGemini15Flash TargetModel = "gemini-1.5-flash"
)

const (
	JudgeClaude3Opus   JudgeModel = "claude-3-opus-20240229"
	JudgeClaude3Sonnet JudgeModel = "claude-3-sonnet-20240229"
	JudgeClaude3Haiku  JudgeModel = "claude-3-haiku-20240307"
	JudgeGPT4          JudgeModel = "gpt-4o"
	JudgeGPT4Turbo     JudgeModel = "gpt-4-turbo"
	JudgeGPT35Turbo    JudgeModel = "gpt-3.5-turbo"
	JudgeGroqLlama370B JudgeModel = "groq/llama3-70b-8192"
	JudgeGroqMixtral   JudgeModel = "groq/mixtral-8x7b-32768"
	JudgeGroqGemma7B   JudgeModel = "groq/gemma-7b-it"
	JudgeGemini15Pro   JudgeModel = "gemini-1.5-pro"
	JudgeGemini15Flash JudgeModel = "gemini-1.5-flash"
)

// The enumerations are stored as sets so membership checks stay O(1).
// Deliberately two independent maps even though the values coincide.
var targetModels = map[TargetModel]struct{}{
	TargetClaude3Opus:   {},
	TargetClaude3Sonnet: {},
	TargetClaude3Haiku:  {},
	TargetGPT4:          {},
	TargetGPT4Turbo:     {},
	TargetGPT35Turbo:    {},
	TargetGroqLlama370B: {},
	TargetGroqMixtral:   {},
	TargetGroqGemma7B:   {},
	TargetGemini15Pro:   {},
	TargetGemini15Flash: {},
}

var judgeModels = map[JudgeModel]struct{}{
	JudgeClaude3Opus:   {},
	JudgeClaude3Sonnet: {},
	JudgeClaude3Haiku:  {},
	JudgeGPT4:          {},
	JudgeGPT4Turbo:     {},
	JudgeGPT35Turbo:    {},
	JudgeGroqLlama370B: {},
	JudgeGroqMixtral:   {},
	JudgeGroqGemma7B:   {},
	JudgeGemini15Pro:   {},
	JudgeGemini15Flash: {},
}

// ParseTargetModel validates a candidate identifier against the target
// enumeration. An unrecognized identifier is a configuration error, reported
// before any network interaction takes place.
func ParseTargetModel(s string) (TargetModel, error) {
	m := TargetModel(s)
	if _, ok := targetModels[m]; !ok {
		return "", &UnsupportedModelError{Name: s, Role: RoleTarget}
	}
	return m, nil
}

// ParseJudgeModel validates a candidate identifier against the judge enumeration.
func ParseJudgeModel(s string) (JudgeModel, error) {
	m := JudgeModel(s)
	if _, ok := judgeModels[m]; !ok {
		return "", &UnsupportedModelError{Name: s, Role: RoleJudge}
	}
	return m, nil
}

// Validate reports whether the identifier is a member of the target enumeration.
func (m TargetModel) Validate() error {
	_, err := ParseTargetModel(string(m))
	return err
}

// Validate reports whether the identifier is a member of the judge enumeration.
func (m JudgeModel) Validate() error {
	_, err := ParseJudgeModel(string(m))
	return err
}

// TargetModels returns the target enumeration in lexical order.
func TargetModels() []string {
	out := make([]string, 0, len(targetModels))
	for m := range targetModels {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}

// JudgeModels returns the judge enumeration in lexical order.
func JudgeModels() []string {
	out := make([]string, 0, len(judgeModels))
	for m := range judgeModels {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}
