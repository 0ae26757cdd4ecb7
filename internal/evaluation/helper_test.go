package evaluation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// MockResponseClient is a mock implementation of schemas.ResponseClient.
type MockResponseClient struct {
	mock.Mock
}

func (m *MockResponseClient) Respond(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockResponseClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// newEvaluator wires an evaluator to a fresh mock with the default budget.
func newEvaluator(t *testing.T) (*Evaluator, *MockResponseClient) {
	t.Helper()
	client := new(MockResponseClient)
	return NewEvaluator(client, 0), client
}

// instructionContains matches a generation request whose instruction carries
// every given substring, addressed to the given model.
func instructionContains(model string, substrings ...string) any {
	return mock.MatchedBy(func(req schemas.GenerationRequest) bool {
		if req.Model != model {
			return false
		}
		for _, s := range substrings {
			if !strings.Contains(req.Instruction, s) {
				return false
			}
		}
		return true
	})
}
