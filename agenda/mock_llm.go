package agenda

import (
	"context"
	"strings"
)

// MockLLM 은 외부 모델 호출 없이 고정된 아젠다를 돌려주는 디버깅용 구현.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("## 지난 주 리뷰\n\n")
	sb.WriteString("- 지난 체크인 액션 아이템 점검\n\n")
	sb.WriteString("## 이번 주 목표\n\n")
	sb.WriteString("- 팀 목표 진행 상황 공유\n\n")
	sb.WriteString("## 논의 사항\n\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n")
	return sb.String(), nil
}
