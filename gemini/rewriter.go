// Package gemini rewrites resume content with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/resumekit"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator is the subset of *genai.Models used by Rewriter.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure Rewriter implements resumekit.Rewriter at compile time.
var _ resumekit.Rewriter = (*Rewriter)(nil)

// Rewriter implements resumekit.Rewriter using Google Gemini.
type Rewriter struct {
	models    Generator
	model     string
	counter   *TokenCounter
	maxTokens int
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(r *Rewriter) {
		r.model = model
	}
}

// WithTokenBudget rejects prompts that exceed max tokens as counted by
// counter, before any request is made.
func WithTokenBudget(counter *TokenCounter, max int) Option {
	return func(r *Rewriter) {
		r.counter = counter
		r.maxTokens = max
	}
}

// NewRewriter creates a new Rewriter. Pass client.Models as models.
func NewRewriter(models Generator, opts ...Option) *Rewriter {
	r := &Rewriter{models: models, model: DefaultModel}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns content rewritten according to instructions.
func (r *Rewriter) Rewrite(ctx context.Context, content, instructions string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", resumekit.Errorf(resumekit.EINVALID, "Resume content is empty.")
	}

	prompt := BuildUserPrompt(content, instructions)
	if r.counter != nil && r.maxTokens > 0 {
		n, err := r.counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n > r.maxTokens {
			return "", resumekit.Errorf(resumekit.EINVALID, "Resume is too long to rewrite (%d tokens, limit %d).", n, r.maxTokens)
		}
	}

	result, err := r.models.GenerateContent(ctx, r.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", resumekit.Errorf(resumekit.EINTERNAL, "gemini returned nil result")
	}

	out := StripFence(result.Text())
	if out == "" {
		return "", resumekit.Errorf(resumekit.EEMPTY, "The rewrite returned no content.")
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an editor improving resumes. Keep every fact from the original and invent nothing. " +
					"Reply with the full resume as markdown only: a level one heading with the name, contact lines, " +
					"level two headings for sections and bullet lists for entries.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the resume and the
// optional instructions.
func BuildUserPrompt(content, instructions string) string {
	var sb strings.Builder
	sb.WriteString("<resume>\n")
	sb.WriteString(strings.TrimSpace(content))
	sb.WriteString("\n</resume>\n\n")
	instructions = strings.TrimSpace(instructions)
	if instructions == "" {
		instructions = "Tighten the wording and make each bullet lead with an action and a result."
	}
	fmt.Fprintf(&sb, "Instructions: %s", instructions)
	return sb.String()
}

// StripFence removes a surrounding ``` or ```markdown fence if the model
// wrapped its answer in one.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s[nl+1:]), "```")
	return strings.TrimSpace(s)
}
