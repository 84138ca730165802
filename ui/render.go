// Package ui exposes the coaching pipeline over HTTP.
package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fiture/domain/coach"
)

// RenderMarkdown formats a coaching card as a markdown document
func RenderMarkdown(card coach.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", card.Title)
	fmt.Fprintf(&b, "%s\n", card.Summary)

	if len(card.Reasons) > 0 {
		b.WriteString("\n## What's weighing on you\n\n")
		for _, r := range card.Reasons {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	if len(card.Actions) > 0 {
		b.WriteString("\n## Today's actions\n\n")
		for i, a := range card.Actions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, a)
		}
	}

	b.WriteString("\n## Meals\n\n")
	fmt.Fprintf(&b, "- Morning: %s\n", card.Food.Morning)
	fmt.Fprintf(&b, "- Snack: %s\n", card.Food.Snack)
	fmt.Fprintf(&b, "- Dinner: %s\n", card.Food.Dinner)

	if len(card.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range card.Warnings {
			fmt.Fprintf(&b, "> ⚠ %s\n", w)
		}
	}
	return b.String()
}

// RenderHTML renders a coaching card to an HTML fragment via markdown
func RenderHTML(card coach.Card) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(RenderMarkdown(card)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
