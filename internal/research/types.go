package research

import (
	"context"
	"fmt"
)

// Completer is the single capability consumed from the upstream
// language-model backend: given a persona instruction and a user message,
// return natural-language text. Implementations may fail with transport,
// auth or rate-limit errors and give no guarantee about output structure.
type Completer interface {
	Complete(ctx context.Context, personaInstruction, userMessage string) (string, error)
}

// SubQuestion is one narrower question produced by decomposition, with a
// short note on why it matters for the main question.
type SubQuestion struct {
	Question  string `json:"question"`
	Relevance string `json:"relevance"`
}

// EngineResponse is the settled outcome of one engine call: either completion
// text or an error message, never both and never neither.
type EngineResponse struct {
	// Content holds the completion text when the call succeeded.
	Content string
	// Err holds the error text when the call failed.
	Err string
}

// OkResponse creates a successful EngineResponse.
func OkResponse(content string) EngineResponse {
	return EngineResponse{Content: content}
}

// ErrResponse creates a failed EngineResponse.
func ErrResponse(message string) EngineResponse {
	return EngineResponse{Err: message}
}

// Failed reports whether the engine call failed.
func (r EngineResponse) Failed() bool {
	return r.Err != ""
}

// Text flattens the response to displayable text. Failed calls render as
// readable error text inline rather than being hidden.
func (r EngineResponse) Text() string {
	if r.Failed() {
		return fmt.Sprintf("Error: %s", r.Err)
	}
	return r.Content
}

// Report is the structured synthesis of all engine outputs. All five fields
// are always present and non-empty, whether the synthesis succeeded or was
// constructed by a degraded path. FullSynthesisRaw is set only when the
// upstream synthesis text could not be parsed into the structured fields; it
// preserves the complete text so nothing is lost.
type Report struct {
	ExecutiveSummary   string `json:"executiveSummary"`
	KeyFindings        string `json:"keyFindings"`
	ToolComparison     string `json:"toolComparison"`
	RisksUncertainties string `json:"risksUncertainties"`
	Recommendations    string `json:"recommendations"`
	FullSynthesisRaw   string `json:"fullSynthesisRaw,omitempty"`
}

// Result is the complete outcome of one pipeline invocation: the synthesis
// report plus the decomposed sub-questions and every engine's output
// flattened to displayable text. It is constructed once per request and not
// persisted.
type Result struct {
	Report
	SubQuestions  []string          `json:"subQuestions"`
	ToolResponses map[string]string `json:"toolResponses"`
}
