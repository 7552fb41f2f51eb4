package agenda

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"auto_checkin_doc_generator/notion"
)

// MarkdownToBlocks walks the goldmark AST and emits Notion blocks for the
// drafted agenda. Headings map to heading_1..3 (deeper levels clamp to 3),
// list items to bulleted_list_item, everything else degrades to paragraphs.
// Inline styling is dropped; the agenda is plain text on the Notion side.
func MarkdownToBlocks(md string) []notion.Block {
	source := []byte(md)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []notion.Block
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			level := n.Level
			if level > 3 {
				level = 3
			}
			blocks = append(blocks, textBlock(fmt.Sprintf("heading_%d", level), string(n.Text(source))))
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				content := string(item.Text(source))
				if content == "" {
					continue
				}
				blocks = append(blocks, textBlock("bulleted_list_item", content))
			}
		default:
			content := string(node.Text(source))
			if content == "" {
				continue
			}
			blocks = append(blocks, textBlock("paragraph", content))
		}
	}
	return blocks
}

func textBlock(kind, content string) notion.Block {
	return notion.Block{
		"object": "block",
		"type":   kind,
		kind: map[string]any{
			"rich_text": []any{
				map[string]any{"type": "text", "text": map[string]any{"content": content}},
			},
		},
	}
}
