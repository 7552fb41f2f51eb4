package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLLM struct{}

func (failingLLM) Complete(context.Context, Prompt) (string, error) {
	return "", errors.New("model unavailable")
}

type emptyLLM struct{}

func (emptyLLM) Complete(context.Context, Prompt) (string, error) {
	return "   \n", nil
}

func testSpec() Spec {
	return Spec{
		Topic:    "2분기 OKR",
		TeamName: "infra",
		Date:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Index:    13,
	}
}

func TestNewAgentRequiresLLM(t *testing.T) {
	_, err := NewAgent(nil)
	require.Error(t, err)
}

func TestAgentGenerateWithMock(t *testing.T) {
	agent, err := NewAgent(MockLLM{})
	require.NoError(t, err)

	draft, err := agent.Generate(context.Background(), testSpec())
	require.NoError(t, err)
	assert.Contains(t, draft.Markdown, "## 지난 주 리뷰")
	assert.Contains(t, draft.Markdown, "infra")
}

func TestAgentGeneratePropagatesLLMError(t *testing.T) {
	agent, err := NewAgent(failingLLM{})
	require.NoError(t, err)

	_, err = agent.Generate(context.Background(), testSpec())
	require.Error(t, err)
}

func TestAgentGenerateRejectsEmptyOutput(t *testing.T) {
	agent, err := NewAgent(emptyLLM{})
	require.NoError(t, err)

	_, err = agent.Generate(context.Background(), testSpec())
	require.Error(t, err)
}

func TestBuildAgendaPrompt(t *testing.T) {
	prompt := BuildAgendaPrompt(testSpec())
	assert.Contains(t, prompt.User, "infra")
	assert.Contains(t, prompt.User, "2024-06-10")
	assert.Contains(t, prompt.User, "#13")
	assert.Contains(t, prompt.User, "2분기 OKR")
	assert.NotEmpty(t, prompt.System)
}

func TestPostProcessStripsFence(t *testing.T) {
	draft, err := PostProcess("```markdown\n## 섹션\n\n- 항목\n```")
	require.NoError(t, err)
	assert.Equal(t, "## 섹션\n\n- 항목", draft.Markdown)
}

func TestPostProcessKeepsPlainMarkdown(t *testing.T) {
	draft, err := PostProcess("## 섹션\n\n- 항목\n")
	require.NoError(t, err)
	assert.Equal(t, "## 섹션\n\n- 항목", draft.Markdown)
}
