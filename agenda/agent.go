package agenda

import (
	"context"
	"errors"
)

// Agent 는 Spec으로부터 아젠다 초안을 생성한다.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate drafts the agenda for one check-in. Failures here are expected to
// be non-fatal for the caller: the page can always be created without a body.
func (a *Agent) Generate(ctx context.Context, spec Spec) (Draft, error) {
	raw, err := a.llm.Complete(ctx, BuildAgendaPrompt(spec))
	if err != nil {
		return Draft{}, err
	}
	return PostProcess(raw)
}
