package agenda

import "context"

// LLMClient 추상화로 실제 모델과 Mock을 바꿔 끼울 수 있게 한다.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 는 구체 구현에 전달되는 기본 설정.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
