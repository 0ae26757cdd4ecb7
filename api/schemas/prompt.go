package schemas

// -- Prompt Evaluation Schemas --
//
// Every type here is a plain value object: built once per operation call,
// owned by the caller, never mutated or shared afterwards.

// FragmentKind classifies a logical sub-part of a prompt.
type FragmentKind string

const (
	FragmentInstruction FragmentKind = "instruction" // Direct guidance to the model.
	FragmentContext     FragmentKind = "context"     // Background information or setting.
	FragmentExample     FragmentKind = "example"     // A demonstration of expected behavior.
	FragmentConstraint  FragmentKind = "constraint"  // A limitation or boundary on responses.
)

// Valid reports whether the kind is one of the four recognized classifications.
func (k FragmentKind) Valid() bool {
	switch k {
	case FragmentInstruction, FragmentContext, FragmentExample, FragmentConstraint:
		return true
	}
	return false
}

// Fragment is a section of a prompt scored for alignment with the prompt's goal.
type Fragment struct {
	Text                  string       `json:"text"`
	Kind                  FragmentKind `json:"type"`
	GoalAlignment         int          `json:"goal_alignment"` // 1..5, 5 is perfectly aligned.
	ImprovementSuggestion string       `json:"improvement_suggestion"`
}

// LogKind is the severity of a diagnostic produced by log analysis.
type LogKind string

const (
	LogInfo    LogKind = "info"
	LogWarning LogKind = "warning"
	LogError   LogKind = "error"
)

// Valid reports whether the kind is one of the three recognized severities.
func (k LogKind) Valid() bool {
	switch k {
	case LogInfo, LogWarning, LogError:
		return true
	}
	return false
}

// LogEntry is a single diagnostic message about a prompt, relative to its goal.
type LogEntry struct {
	Kind    LogKind `json:"type"`
	Message string  `json:"message"`
}

// TestCase is a generated input/output pair for validating a prompt. The Input
// map's keys are the {name} placeholders extracted from the prompt; key order
// carries no meaning.
type TestCase struct {
	Input          map[string]string `json:"input"`
	ExpectedOutput string            `json:"expected_output"`
	GoalRelevance  int               `json:"goal_relevance"` // 1..5, 5 is highly relevant to the goal.
}

// PromptAnalysis is the overall effectiveness verdict for a prompt.
// InferredGoal is meaningful only when IsGoalInferred is true.
type PromptAnalysis struct {
	OverallGoalAlignment   int      `json:"overall_goal_alignment"` // 1..10
	SuggestedImprovements  []string `json:"suggested_improvements"`
	EstimatedEffectiveness int      `json:"estimated_effectiveness"` // 1..10
	InferredGoal           string   `json:"inferred_goal,omitempty"`
	IsGoalInferred         bool     `json:"is_goal_inferred"`
}
