package research

import (
	"context"
	"strings"
	"testing"

	"github.com/quorumhq/quorum/internal/errors"
)

func TestNewPipeline_Validation(t *testing.T) {
	_, err := NewPipeline(PipelineConfig{Engines: testEngines(1)})
	if err == nil || !strings.Contains(err.Error(), "Client is required") {
		t.Errorf("err = %v, want missing client error", err)
	}

	_, err = NewPipeline(PipelineConfig{Client: fixedCompleter("x")})
	if err == nil || !strings.Contains(err.Error(), "engine is required") {
		t.Errorf("err = %v, want missing engines error", err)
	}
}

// TestPipeline_TidalLockingScenario exercises the full degradation path:
// decomposition fails (fallback sub-questions), engine A succeeds, engine B
// fails with a transport error, and the synthesis call fails (canned report).
func TestPipeline_TidalLockingScenario(t *testing.T) {
	question := "What causes tidal locking?"
	engines := []Engine{
		{ID: "A", Persona: "persona-a"},
		{ID: "B", Persona: "persona-b"},
	}

	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		switch persona {
		case "persona-a":
			return "Tidal forces synchronize rotation.", nil
		case "persona-b":
			return "", errors.New("transport error: connection reset")
		default:
			// Decomposition and synthesis calls both fail.
			return "", errors.ErrUpstreamUnavailable
		}
	}}

	p, err := NewPipeline(PipelineConfig{Client: client, Engines: engines})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result, err := p.Run(context.Background(), question)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Decomposition fell back to the three deterministic sub-questions.
	if len(result.SubQuestions) != 3 {
		t.Fatalf("sub-questions = %d, want 3", len(result.SubQuestions))
	}
	for i, sq := range result.SubQuestions {
		if !strings.Contains(sq, question) {
			t.Errorf("sub-question %d = %q, want containing the original question", i, sq)
		}
	}

	// Both engines settled, keyed correctly.
	if len(result.ToolResponses) != 2 {
		t.Fatalf("tool responses = %d, want 2", len(result.ToolResponses))
	}
	if result.ToolResponses["A"] != "Tidal forces synchronize rotation." {
		t.Errorf("ToolResponses[A] = %q", result.ToolResponses["A"])
	}
	if !strings.Contains(result.ToolResponses["B"], "transport error: connection reset") {
		t.Errorf("ToolResponses[B] = %q, want containing the error text", result.ToolResponses["B"])
	}

	// Synthesis failed outright, so the report is the canned degraded one,
	// still with all five fields populated.
	if result.ExecutiveSummary == "" || result.KeyFindings == "" || result.ToolComparison == "" ||
		result.RisksUncertainties == "" || result.Recommendations == "" {
		t.Errorf("degraded report has empty fields: %+v", result.Report)
	}
	if !strings.Contains(result.ExecutiveSummary, "Synthesis failed") {
		t.Errorf("ExecutiveSummary = %q, want synthesis failure notice", result.ExecutiveSummary)
	}
}

func TestPipeline_NotConfiguredSentinel(t *testing.T) {
	// An unconfigured capability returns the same ordinary notice for every
	// call; the pipeline must still produce a success-shaped result.
	const sentinel = "Research capability not configured."
	engines := testEngines(3)

	p, err := NewPipeline(PipelineConfig{
		Client:  fixedCompleter(sentinel),
		Engines: engines,
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result, err := p.Run(context.Background(), "any question")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.ToolResponses) != 3 {
		t.Fatalf("tool responses = %d, want 3", len(result.ToolResponses))
	}
	for id, text := range result.ToolResponses {
		if text != sentinel {
			t.Errorf("ToolResponses[%s] = %q, want the sentinel notice", id, text)
		}
		if strings.HasPrefix(text, "Error:") {
			t.Errorf("ToolResponses[%s] rendered as an error, want ordinary text", id)
		}
	}

	// The sentinel is not JSON, so decomposition fell back and synthesis
	// produced the fallback report around the raw sentinel text.
	if len(result.SubQuestions) != 3 {
		t.Errorf("sub-questions = %d, want 3 fallback", len(result.SubQuestions))
	}
	if result.ExecutiveSummary == "" {
		t.Error("report must stay well-formed without a credential")
	}
}

func TestPipeline_SuccessPath(t *testing.T) {
	engines := []Engine{{ID: "A", Persona: "persona-a"}}

	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		switch persona {
		case decomposerPersona:
			return `[{"question":"Sub?","relevance":"r"}]`, nil
		case synthesizerPersona:
			return `{"executiveSummary":"s","keyFindings":"k","toolComparison":"t","risksUncertainties":"r","recommendations":"c"}`, nil
		default:
			return "engine answer", nil
		}
	}}

	p, err := NewPipeline(PipelineConfig{Client: client, Engines: engines})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result, err := p.Run(context.Background(), "q")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.SubQuestions) != 1 || result.SubQuestions[0] != "Sub?" {
		t.Errorf("SubQuestions = %v", result.SubQuestions)
	}
	if result.ToolResponses["A"] != "engine answer" {
		t.Errorf("ToolResponses[A] = %q", result.ToolResponses["A"])
	}
	if result.ExecutiveSummary != "s" {
		t.Errorf("ExecutiveSummary = %q, want %q", result.ExecutiveSummary, "s")
	}
	if result.FullSynthesisRaw != "" {
		t.Error("FullSynthesisRaw should be empty on the structured path")
	}
}

func TestPipeline_AbsorbsPanics(t *testing.T) {
	client := fakeCompleter{fn: func(string, string) (string, error) {
		panic("unexpected fault in worker")
	}}

	p, err := NewPipeline(PipelineConfig{Client: client, Engines: testEngines(2)})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	result, err := p.Run(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error from panicking worker")
	}
	if result != nil {
		t.Error("result should be nil on internal error")
	}

	var pipeErr *errors.PipelineError
	if !errors.As(err, &pipeErr) {
		t.Errorf("error type = %T, want *errors.PipelineError", err)
	}
}

func TestPipeline_Engines(t *testing.T) {
	engines := testEngines(2)
	p, err := NewPipeline(PipelineConfig{Client: fixedCompleter("x"), Engines: engines})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	got := p.Engines()
	if len(got) != 2 || got[0].ID != "engine-0" {
		t.Errorf("Engines() = %v", got)
	}
}
