// Package generator produces HTML report sections, either through an
// Ollama model guided by the style-derived prompt or through the
// rule-based simulated fallback when no model is reachable.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
	"github.com/najouaboughida-blip/rapport-stage/internal/prompts"
)

// Result is one generated section with its generation metadata.
type Result struct {
	Content      string
	Simulated    bool
	WordCount    int
	PromptLength int
}

// Generator renders report sections. With a nil client every section is
// produced by the simulated fallback.
type Generator struct {
	client  *Client
	prompts *prompts.Generator
}

func New(client *Client, promptGen *prompts.Generator) *Generator {
	return &Generator{client: client, prompts: promptGen}
}

// GenerateSection produces the named section. Model failures degrade to
// the simulated fallback rather than failing the section; the returned
// error is the model error, kept so callers can decide whether to
// retry.
func (g *Generator) GenerateSection(ctx context.Context, section string, sectionCtx models.SectionContext) (Result, error) {
	prompt := g.prompts.ForSection(section, sectionCtx)

	if g.client == nil {
		return g.simulated(section, sectionCtx, prompt), nil
	}

	content, err := g.client.GenerateResponse(ctx, prompt)
	if err != nil {
		slog.Warn("section generation fell back to simulated content",
			"section", section, "error", err)
		return g.simulated(section, sectionCtx, prompt), fmt.Errorf("generate section %s: %w", section, err)
	}

	content = cleanGeneratedContent(content, section)
	return Result{
		Content:      content,
		WordCount:    len(strings.Fields(content)),
		PromptLength: utf8.RuneCountInString(prompt),
	}, nil
}

// simulated renders the section's instruction template as content. The
// template is structured, self-contained French text, which keeps the
// report editable when no model is available.
func (g *Generator) simulated(section string, sectionCtx models.SectionContext, prompt string) Result {
	content := cleanGeneratedContent(g.prompts.SectionTemplate(section, sectionCtx), section)
	return Result{
		Content:      content,
		Simulated:    true,
		WordCount:    len(strings.Fields(content)),
		PromptLength: utf8.RuneCountInString(prompt),
	}
}

// cleanGeneratedContent normalizes model output into the simple-HTML
// contract: no code fences, no markdown, paragraph tags around prose
// and a section heading when the model omitted one.
func cleanGeneratedContent(content, section string) string {
	if strings.TrimSpace(content) == "" {
		return "<p>Contenu non disponible</p>"
	}

	content = strings.ReplaceAll(content, "```html", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	content = replacePairs(content, "**", "<strong>", "</strong>")
	content = replacePairs(content, "*", "<em>", "</em>")

	content = strings.ReplaceAll(content, "\n\n", "</p><p>")
	content = strings.ReplaceAll(content, "\n", "<br>")

	if !strings.HasPrefix(content, "<") {
		content = "<p>" + content + "</p>"
	}

	if section != prompts.SectionCoverPage && !strings.Contains(content, "<h2") {
		content = fmt.Sprintf("<h2>%s</h2>%s", sectionTitle(section), content)
	}

	return content
}

// replacePairs substitutes successive occurrences of marker with
// alternating open/close tags. An unmatched trailing marker is left in
// place.
func replacePairs(content, marker, openTag, closeTag string) string {
	parts := strings.Split(content, marker)
	if len(parts) == 1 {
		return content
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for i := 1; i < len(parts); i++ {
		switch {
		case i%2 == 1 && i == len(parts)-1:
			b.WriteString(marker)
		case i%2 == 1:
			b.WriteString(openTag)
		default:
			b.WriteString(closeTag)
		}
		b.WriteString(parts[i])
	}
	return b.String()
}

// sectionTitle renders a section identifier as a display heading.
func sectionTitle(section string) string {
	words := strings.Split(section, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
