package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quorumhq/quorum/internal/logging"
)

// decomposerPersona instructs the backend to act as a research planner.
const decomposerPersona = "You are a research planning assistant. You break broad " +
	"research questions into focused sub-questions that together cover the topic."

// Decomposer splits one main question into an ordered list of sub-questions.
// It never fails outward: when the upstream call fails or returns text that
// is not a JSON array, it substitutes three deterministic fallback
// sub-questions built from the original question. Decomposition failure is
// invisible to the rest of the pipeline.
type Decomposer struct {
	client Completer
	logger *logging.Logger
}

// NewDecomposer creates a Decomposer. A nil logger defaults to a no-op logger.
func NewDecomposer(client Completer, logger *logging.Logger) *Decomposer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Decomposer{
		client: client,
		logger: logger.WithStage("decompose"),
	}
}

// Decompose returns the sub-questions for question. The result is never
// empty; 3-5 sub-questions are expected from the backend but not enforced.
func (d *Decomposer) Decompose(ctx context.Context, question string) []SubQuestion {
	prompt := fmt.Sprintf("Break the following research question into 3-5 focused sub-questions. "+
		"Respond with ONLY a JSON array of objects, each with a %q field and a %q field "+
		"explaining why that sub-question matters. No prose, no code fences.\n\nQuestion: %s",
		"question", "relevance", question)

	text, err := d.client.Complete(ctx, decomposerPersona, prompt)
	if err != nil {
		d.logger.Warn("decomposition call failed, using fallback sub-questions", "error", err.Error())
		return fallbackSubQuestions(question)
	}

	subs, ok := parseSubQuestions(text)
	if !ok {
		d.logger.Warn("decomposition output not a JSON array, using fallback sub-questions")
		return fallbackSubQuestions(question)
	}

	d.logger.Debug("question decomposed", "sub_questions", len(subs))
	return subs
}

// parseSubQuestions attempts to parse upstream text as a JSON array of
// sub-questions. The parse is best-effort: the backend has no guaranteed
// output schema.
func parseSubQuestions(text string) ([]SubQuestion, bool) {
	var subs []SubQuestion
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &subs); err != nil {
		return nil, false
	}

	// Entries without question text carry no signal; drop them.
	kept := subs[:0]
	for _, s := range subs {
		if strings.TrimSpace(s.Question) != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return kept, true
}

// fallbackSubQuestions deterministically builds three sub-questions by
// substituting the original question into three fixed relevance categories.
func fallbackSubQuestions(question string) []SubQuestion {
	return []SubQuestion{
		{
			Question:  fmt.Sprintf("What is the definition and background of: %s", question),
			Relevance: "Definition and context",
		},
		{
			Question:  fmt.Sprintf("What are the core components and mechanisms of: %s", question),
			Relevance: "Core components",
		},
		{
			Question:  fmt.Sprintf("What are the impact and consequences of: %s", question),
			Relevance: "Impact and consequences",
		},
	}
}
