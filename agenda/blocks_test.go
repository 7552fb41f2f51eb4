package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockText(t *testing.T, b map[string]any) string {
	t.Helper()
	kind, _ := b["type"].(string)
	body, ok := b[kind].(map[string]any)
	require.True(t, ok, "block %v has no body for type %q", b, kind)
	richText, ok := body["rich_text"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, richText)
	text := richText[0].(map[string]any)["text"].(map[string]any)
	return text["content"].(string)
}

func TestMarkdownToBlocks(t *testing.T) {
	md := "## 지난 주 리뷰\n\n- 액션 아이템 점검\n- 블로커 공유\n\n본문 단락입니다.\n"
	blocks := MarkdownToBlocks(md)
	require.Len(t, blocks, 4)

	assert.Equal(t, "heading_2", blocks[0]["type"])
	assert.Equal(t, "지난 주 리뷰", blockText(t, blocks[0]))
	assert.Equal(t, "bulleted_list_item", blocks[1]["type"])
	assert.Equal(t, "액션 아이템 점검", blockText(t, blocks[1]))
	assert.Equal(t, "bulleted_list_item", blocks[2]["type"])
	assert.Equal(t, "paragraph", blocks[3]["type"])
	assert.Equal(t, "본문 단락입니다.", blockText(t, blocks[3]))
}

func TestMarkdownToBlocksClampsHeadingDepth(t *testing.T) {
	blocks := MarkdownToBlocks("##### 깊은 제목\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "heading_3", blocks[0]["type"])
}

func TestMarkdownToBlocksEmptyInput(t *testing.T) {
	assert.Empty(t, MarkdownToBlocks(""))
}
