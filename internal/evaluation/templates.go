// File: internal/evaluation/templates.go
package evaluation

import (
	"fmt"
	"strings"
)

// Instruction templates. Each renders a deterministic text with exactly three
// variable regions at most: the raw prompt, the resolved goal, and (for test
// generation) the placeholder list. Every structured template ends by
// demanding JSON in one fixed shape "without any other text"; replies that
// ignore that demand fail in the contract parser.

func goalInferenceInstruction(prompt string) string {
	return fmt.Sprintf(`Given the following prompt, infer the likely goal or intention of the user:

Prompt: %s

Provide a concise statement of the inferred goal in one sentence as a JSON dictionary with the key "goal" and the value being the inferred goal.
`, prompt)
}

func fragmentAnalysisInstruction(prompt, goal string) string {
	return fmt.Sprintf(`Analyze the following prompt for an LLM, keeping in mind the goal:

Prompt: %s

Goal: %s

Divide the prompt into fragments and analyze each fragment. For each fragment, determine:
1. The type (instruction, context, example, or constraint)
2. How well it aligns with the goal (1-5, where 5 is perfectly aligned)
3. A suggestion for improvement to better align with the goal

Provide your analysis in the following JSON format without any other text:
{
  "fragments": [
    {
      "text": "fragment text",
      "type": "fragment type",
      "goal_alignment": alignment_score,
      "improvement_suggestion": "suggestion to better align with goal"
    },
    ...
  ]
}
`, prompt, goal)
}

func logAnalysisInstruction(prompt, goal string) string {
	return fmt.Sprintf(`Analyze the following prompt for an LLM, keeping in mind the goal:

Prompt: %s

Goal: %s

Generate a list of logs (info, warnings, or errors) based on the changes being made to the prompt. Focus on aspects that are relevant to achieving the goal.

Provide your analysis in the following JSON format without any other text:
{
  "logs": [
    {
      "type": "info/warning/error",
      "message": "log message relevant to achieving the goal"
    },
    ...
  ]
}
`, prompt, goal)
}

// promptAnalysisInstruction labels the goal as inferred or provided, and
// pre-fills the inferred_goal/is_goal_inferred fields of the demanded shape
// so the judge echoes them back into the typed record.
func promptAnalysisInstruction(prompt, goal string, goalInferred bool) string {
	label := "provided"
	echoedGoal := ""
	if goalInferred {
		label = "inferred"
		echoedGoal = goal
	}

	return fmt.Sprintf(`Analyze the following prompt for an LLM, keeping in mind the %[1]s goal:

Prompt: %[2]s

%[3]s Goal: %[4]s

Provide an overall analysis including:
1. Overall alignment of the prompt with the goal (1-10)
2. List of suggested improvements to better achieve the goal
3. Estimated effectiveness of the prompt in achieving the goal (1-10)

Provide your analysis in the following JSON format without any other text:
{
  "overall_goal_alignment": overall_alignment_score,
  "suggested_improvements": ["improvement1", "improvement2", ...],
  "estimated_effectiveness": effectiveness_score,
  "inferred_goal": "%[5]s",
  "is_goal_inferred": %[6]t
}
`, label, prompt, titleCase(label), goal, echoedGoal, goalInferred)
}

func testGenerationInstruction(prompt, goal string, placeholders []string) string {
	return fmt.Sprintf(`Generate a test case for the following LLM prompt, keeping in mind the goal:

Prompt: %s

Goal: %s

Variables found in the prompt: %s

Provide a test case that is relevant to achieving the goal. Use the following JSON format:
{
  "input": {
    "variable1": "value1",
    "variable2": "value2",
    ...
  },
  "expected_output": "expected output for the test case",
  "goal_relevance": relevance_score
}

The input should include values for all variables found in the prompt.
The goal_relevance score should be from 1-5, where 5 means the test case is highly relevant to achieving the goal.
`, prompt, goal, strings.Join(placeholders, ", "))
}

// titleCase uppercases the first byte; the labels here are plain ASCII.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
