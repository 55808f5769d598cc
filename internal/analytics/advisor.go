package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Advisor rephrases rule-based recommendations into operator-friendly
// language with an LLM. It is optional: without an API key the raw
// recommendation text is served unchanged.
type Advisor struct {
	model llms.Model
}

// NewAdvisor returns nil (no error) when apiKey is empty so callers can
// treat a missing key as "advisor disabled".
func NewAdvisor(apiKey string) (*Advisor, error) {
	if apiKey == "" {
		return nil, nil
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel("gpt-4o-mini"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &Advisor{model: llm}, nil
}

// Rephrase rewrites each recommendation message in plain language a
// busy restaurant manager would act on. On any failure the original
// messages are returned so the insights panel degrades, not breaks.
func (a *Advisor) Rephrase(ctx context.Context, recs []Recommendation) []Recommendation {
	if a == nil || len(recs) == 0 {
		return recs
	}

	var b strings.Builder
	b.WriteString("Rewrite each line as one short, friendly sentence for a restaurant manager. ")
	b.WriteString("Keep numbers and currency amounts exactly as given. Reply with one line per input, same order.\n")
	for _, r := range recs {
		b.WriteString(r.Message)
		b.WriteString("\n")
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, a.model, b.String())
	if err != nil {
		return recs
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(recs) {
		return recs
	}
	rephrased := make([]Recommendation, len(recs))
	for i, r := range recs {
		rephrased[i] = r
		if line := strings.TrimSpace(lines[i]); line != "" {
			rephrased[i].Message = line
		}
	}
	return rephrased
}

// FriendlyLabel maps menu engineering jargon to the plain-language
// labels the dashboard shows. Unknown labels pass through.
func FriendlyLabel(classification string) string {
	switch classification {
	case ClassStar:
		return "top seller"
	case ClassPlowhorse:
		return "popular item"
	case ClassPuzzle:
		return "hidden gem"
	case ClassDog:
		return "slow mover"
	}
	return classification
}

// FriendlyText rewrites classification jargon inside free text, plural
// forms first so "Stars" doesn't leave a stray "s" behind.
func FriendlyText(text string) string {
	replacer := strings.NewReplacer(
		"Star items", "top sellers",
		"Star item", "top seller",
		"Plowhorse items", "popular items",
		"Plowhorse item", "popular item",
		"Puzzle items", "hidden gems",
		"Puzzle item", "hidden gem",
		"Dog items", "slow movers",
		"Dog item", "slow mover",
		"Stars", "top sellers",
		"Plowhorses", "popular items",
		"Puzzles", "hidden gems",
		"Dogs", "slow movers",
	)
	return replacer.Replace(text)
}
