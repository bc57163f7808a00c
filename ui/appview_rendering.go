package ui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"domatui/chat"
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	active := a.coordinator.Active()
	if active.Empty() {
		a.viewport.SetContent(a.renderWelcome())
		return
	}

	var content strings.Builder
	for _, msg := range active.Messages {
		timestamp := DimStyle.Render(msg.CreatedAt.Format("[15:04]"))

		if msg.Sender == chat.SenderUser {
			content.WriteString(formatUserMessage(timestamp, msg.Content))
			continue
		}

		role := AssistantStyle.Render("DOMA")
		rendered := a.renderMarkdown(msg.Content)
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, rendered))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// renderMarkdown formats assistant replies for the terminal. Autolink is
// disabled so URLs stay plain text and the terminal emulator handles them.
func (a *AppView) renderMarkdown(content string) string {
	width := a.width - 4
	if width < 20 {
		width = 20
	}
	customExt := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(customExt)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)
	return strings.TrimRight(string(rendered), "\n")
}

// formatUserMessage renders a user message with a vertical bar gutter.
func formatUserMessage(timestamp, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, UserStyle.Render("You")))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")
	return result.String()
}

func (a *AppView) renderWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("  " + a.promptSet.Title))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("  " + a.promptSet.Description))
	b.WriteString("\n\n")

	for i, p := range a.promptSet.Prompts {
		key := SelectedStyle.Render(fmt.Sprintf("  [Alt+%d]", i+1))
		b.WriteString(fmt.Sprintf("%s %s\n", key, TitleStyle.Render(p.Title)))
		b.WriteString(DimStyle.Render("          " + p.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(DimStyle.Render("  Type a question below, or press Ctrl+R to ask by voice."))
	return b.String()
}
