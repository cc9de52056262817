// Package ai generates article drafts from captured insights through an
// opaque remote model call.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

var aiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	aiLogger = l
}

// Draft is a generated article draft. Markdown still needs to be converted
// to the document model by the importer before it reaches the editor.
type Draft struct {
	Title    string
	Markdown string
	Tags     []string
}

type Generator interface {
	Generate(ctx context.Context, keyword, summary, actionType string) (*Draft, error)
}

type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicGenerator(apiKey, model string, maxTokens int64) *AnthropicGenerator {
	return &AnthropicGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

const systemPrompt = `You draft blog articles. Respond with Markdown only:
the first line is a level-1 heading with the article title, the body uses
plain CommonMark, and the final line is "Tags: tag1, tag2, tag3".`

func (g *AnthropicGenerator) Generate(ctx context.Context, keyword, summary, actionType string) (*Draft, error) {
	prompt := buildPrompt(keyword, summary, actionType)

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("draft generation failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	draft := parseDraft(b.String())
	if draft.Markdown == "" {
		return nil, fmt.Errorf("draft generation returned no content")
	}

	aiLogger.Info().Str("keyword", keyword).Str("title", draft.Title).Msg("Draft generated")
	return draft, nil
}

func buildPrompt(keyword, summary, actionType string) string {
	var b strings.Builder
	switch actionType {
	case "expand":
		b.WriteString("Expand the following insight into a full article draft.\n")
	case "outline":
		b.WriteString("Turn the following insight into a structured article outline.\n")
	default:
		b.WriteString("Write an article draft about the following topic.\n")
	}
	fmt.Fprintf(&b, "Topic: %s\n", keyword)
	if summary != "" {
		fmt.Fprintf(&b, "Notes: %s\n", summary)
	}
	return b.String()
}

// parseDraft splits the model response into title, body and tags. The
// response format is a convention, not a contract, so every part is
// optional.
func parseDraft(response string) *Draft {
	draft := &Draft{}
	lines := strings.Split(strings.TrimSpace(response), "\n")

	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		draft.Title = strings.TrimSpace(strings.TrimPrefix(lines[0], "# "))
		lines = lines[1:]
	}

	if len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if rest, ok := strings.CutPrefix(last, "Tags:"); ok {
			for _, tag := range strings.Split(rest, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					draft.Tags = append(draft.Tags, tag)
				}
			}
			lines = lines[:len(lines)-1]
		}
	}

	draft.Markdown = strings.TrimSpace(strings.Join(lines, "\n"))
	return draft
}
