package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quorumhq/quorum/internal/logging"
)

// synthesizerPersona instructs the backend to act as a cross-engine analyst.
const synthesizerPersona = "You are a senior research analyst. You combine findings from " +
	"multiple independent research tools into one rigorous, cross-validated report."

// summaryLimit is how many characters of raw synthesis text go into the
// fallback executive summary.
const summaryLimit = 500

// Synthesizer combines every engine's output into one structured report.
// Its output always has all five report fields populated: a failed upstream
// call yields a canned degraded report, and unparseable upstream text yields
// a deterministic fallback report that preserves the complete raw synthesis.
type Synthesizer struct {
	client Completer
	logger *logging.Logger
}

// NewSynthesizer creates a Synthesizer. A nil logger defaults to a no-op logger.
func NewSynthesizer(client Completer, logger *logging.Logger) *Synthesizer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Synthesizer{
		client: client,
		logger: logger.WithStage("synthesize"),
	}
}

// Synthesize sends one synthesis completion and shapes the result. Engines
// fixes the order in which outputs are embedded in the prompt; responses
// holds every engine's settled outcome, failed calls included.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, subs []SubQuestion, engines []Engine, responses map[string]EngineResponse) Report {
	prompt := synthesisPrompt(question, subs, engines, responses)

	text, err := s.client.Complete(ctx, synthesizerPersona, prompt)
	if err != nil {
		s.logger.Warn("synthesis call failed, returning degraded report", "error", err.Error())
		return degradedReport()
	}

	if report, ok := parseReport(text); ok {
		s.logger.Debug("synthesis parsed into structured report")
		return report
	}

	s.logger.Warn("synthesis output not structured JSON, returning fallback report", "chars", len(text))
	return fallbackReport(text)
}

// synthesisPrompt embeds the main question, the enumerated sub-questions and
// every engine's labeled output verbatim, error text included.
func synthesisPrompt(question string, subs []SubQuestion, engines []Engine, responses map[string]EngineResponse) string {
	var sb strings.Builder

	sb.WriteString("Synthesize the research outputs below into one cross-validated report.\n\n")
	sb.WriteString("Main question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nSub-questions:\n")
	for i, sub := range subs {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, sub.Question, sub.Relevance)
	}

	sb.WriteString("\nResearch tool outputs:\n")
	for _, engine := range engines {
		fmt.Fprintf(&sb, "\n### %s\n%s\n", engine.ID, responses[engine.ID].Text())
	}

	sb.WriteString("\nInstructions:\n" +
		"- Synthesize the findings; do not copy any single tool's output.\n" +
		"- Identify where the tools agree and treat that consensus as the strongest signal.\n" +
		"- Flag disagreement between tools with the marker \"⚠️ DISAGREEMENT:\" and " +
		"uncertainty with \"⚠️ UNCERTAINTY:\".\n" +
		"- Respond with ONLY a JSON object with exactly these keys: " +
		"\"executiveSummary\", \"keyFindings\", \"toolComparison\", " +
		"\"risksUncertainties\", \"recommendations\". " +
		"Format the value of each key as markdown.\n")

	return sb.String()
}

// parseReport attempts to parse upstream text as a JSON object holding the
// five report fields. The parse is best-effort; all five fields must be
// present and non-empty for the result to be trusted.
func parseReport(text string) (Report, bool) {
	var report Report
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &report); err != nil {
		return Report{}, false
	}
	if report.ExecutiveSummary == "" || report.KeyFindings == "" ||
		report.ToolComparison == "" || report.RisksUncertainties == "" ||
		report.Recommendations == "" {
		return Report{}, false
	}
	report.FullSynthesisRaw = ""
	return report, true
}

// degradedReport is the fully-degraded terminal state used when the
// synthesis call itself fails. It still satisfies the five-field contract.
func degradedReport() Report {
	return Report{
		ExecutiveSummary:   "Synthesis failed: the synthesis call to the research backend did not complete. Please retry the request.",
		KeyFindings:        "Key findings are unavailable because synthesis failed. Retry the request to regenerate them.",
		ToolComparison:     "Tool comparison is unavailable because synthesis failed. Retry the request to regenerate it.",
		RisksUncertainties: "Risks and uncertainties are unavailable because synthesis failed. Retry the request to regenerate them.",
		Recommendations:    "Retry the request. If synthesis keeps failing, check the capability configuration and credential.",
	}
}

// fallbackReport deterministically shapes unstructured synthesis text into
// the report contract. The executive summary carries the opening of the raw
// text; the complete text is preserved in FullSynthesisRaw so no information
// is lost.
func fallbackReport(raw string) Report {
	return Report{
		ExecutiveSummary:   truncate(raw, summaryLimit) + "...",
		KeyFindings:        "See fullSynthesisRaw for the complete synthesis text.",
		ToolComparison:     "See fullSynthesisRaw for the complete synthesis text.",
		RisksUncertainties: "See fullSynthesisRaw for the complete synthesis text.",
		Recommendations:    "See fullSynthesisRaw for the complete synthesis text.",
		FullSynthesisRaw:   raw,
	}
}

// truncate returns the first limit runes of s.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
