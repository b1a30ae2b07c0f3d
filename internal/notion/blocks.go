// Package notion writes briefing documents to a Notion database with
// create-or-replace semantics keyed by page title.
package notion

// Block is a Notion API block object ready for JSON encoding.
type Block = map[string]any

// RichText builds a rich-text array with a single plain span.
func RichText(text string) []map[string]any {
	return []map[string]any{{
		"type": "text",
		"text": map[string]any{"content": text},
	}}
}

// RichTextLink builds a rich-text array with a single hyperlinked span.
func RichTextLink(text, url string) []map[string]any {
	return []map[string]any{{
		"type": "text",
		"text": map[string]any{
			"content": text,
			"link":    map[string]any{"url": url},
		},
	}}
}

// Paragraph builds a paragraph block from an already-assembled rich-text array.
func Paragraph(rich []map[string]any) Block {
	return Block{
		"object":    "block",
		"type":      "paragraph",
		"paragraph": map[string]any{"rich_text": rich},
	}
}

// ParagraphText builds a paragraph block holding a single plain span.
func ParagraphText(text string) Block {
	return Paragraph(RichText(text))
}

// Heading2 builds a heading_2 block.
func Heading2(text string) Block {
	return Block{
		"object":    "block",
		"type":      "heading_2",
		"heading_2": map[string]any{"rich_text": RichText(text)},
	}
}

// Heading3 builds a heading_3 block.
func Heading3(text string) Block {
	return Block{
		"object":    "block",
		"type":      "heading_3",
		"heading_3": map[string]any{"rich_text": RichText(text)},
	}
}

// TableBlock builds a table block whose first row is the column header.
func TableBlock(header []string, rows [][]string) Block {
	children := make([]Block, 0, len(rows)+1)
	children = append(children, tableRow(header))
	for _, row := range rows {
		children = append(children, tableRow(row))
	}
	return Block{
		"object": "block",
		"type":   "table",
		"table": map[string]any{
			"table_width":       len(header),
			"has_column_header": true,
			"has_row_header":    false,
			"children":          children,
		},
	}
}

func tableRow(cells []string) Block {
	rich := make([]any, 0, len(cells))
	for _, cell := range cells {
		rich = append(rich, RichText(cell))
	}
	return Block{
		"object":    "block",
		"type":      "table_row",
		"table_row": map[string]any{"cells": rich},
	}
}
