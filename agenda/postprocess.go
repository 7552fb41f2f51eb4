package agenda

import (
	"errors"
	"strings"
)

// PostProcess 는 모델 출력을 검증하고 Draft로 감싼다.
func PostProcess(raw string) (Draft, error) {
	md := strings.TrimSpace(raw)
	md = stripFence(md)
	if md == "" {
		return Draft{}, errors.New("model returned empty markdown")
	}
	return Draft{Markdown: md}, nil
}

// 일부 모델이 전체 출력을 ```markdown 펜스로 감싸는 경우가 있어 벗겨낸다.
func stripFence(md string) string {
	if !strings.HasPrefix(md, "```") {
		return md
	}
	lines := strings.Split(md, "\n")
	if len(lines) < 2 {
		return md
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return md
}
