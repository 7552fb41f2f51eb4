package agenda

import (
	"fmt"
	"strings"
)

// Prompt 는 LLM에 보내는 메시지 묶음.
type Prompt struct {
	System string
	User   string
}

// BuildAgendaPrompt 는 체크인 회의 아젠다 초안 프롬프트를 만든다.
func BuildAgendaPrompt(spec Spec) Prompt {
	var sb strings.Builder
	sb.WriteString("너는 주간 체크인 회의의 퍼실리테이터다. Markdown 아젠다만 출력하고 다른 설명은 하지 마라.\n")
	sb.WriteString("요구 사항:\n")
	sb.WriteString("- '## 지난 주 리뷰', '## 이번 주 목표', '## 논의 사항' 세 섹션을 포함한다.\n")
	sb.WriteString("- 각 섹션은 bullet 목록으로 작성한다.\n")
	sb.WriteString("- 일급 제목(#)은 쓰지 않는다. 제목은 문서 쪽에서 이미 정해져 있다.\n")

	user := fmt.Sprintf(
		"%s 팀의 %s 체크인 #%d 아젠다를 작성해줘. 팀 주제: %s",
		spec.TeamName, spec.Date.Format("2006-01-02"), spec.Index, spec.Topic,
	)

	return Prompt{System: sb.String(), User: user}
}
