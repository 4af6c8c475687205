package research

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/quorumhq/quorum/internal/errors"
)

func testEngines(n int) []Engine {
	engines := make([]Engine, 0, n)
	for i := 0; i < n; i++ {
		engines = append(engines, Engine{
			ID:      fmt.Sprintf("engine-%d", i),
			Persona: fmt.Sprintf("persona-%d", i),
		})
	}
	return engines
}

func TestFanOut_OneResponsePerEngine(t *testing.T) {
	engines := testEngines(4)

	// Odd engines fail, even engines succeed.
	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		if persona == "persona-1" || persona == "persona-3" {
			return "", errors.New("transport error")
		}
		return "answer from " + persona, nil
	}}

	results := FanOut(context.Background(), client, engines, "q", nil, nil)

	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	for _, engine := range engines {
		if _, ok := results[engine.ID]; !ok {
			t.Errorf("missing result for %s", engine.ID)
		}
	}
	if results["engine-0"].Failed() {
		t.Error("engine-0 should have succeeded")
	}
	if !results["engine-1"].Failed() {
		t.Error("engine-1 should have failed")
	}
}

func TestFanOut_ResultsKeyedByEngine(t *testing.T) {
	// Responses must map back to their engine by explicit association, not
	// by completion order. Each engine answers with its own persona so a
	// misalignment is detectable.
	engines := testEngines(8)
	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		return "echo:" + persona, nil
	}}

	results := FanOut(context.Background(), client, engines, "q", nil, nil)

	for i, engine := range engines {
		want := fmt.Sprintf("echo:persona-%d", i)
		if got := results[engine.ID].Content; got != want {
			t.Errorf("%s content = %q, want %q", engine.ID, got, want)
		}
	}
}

func TestFanOut_AllFailuresStillSettle(t *testing.T) {
	engines := testEngines(3)
	client := failingCompleter(errors.New("everything is down"))

	results := FanOut(context.Background(), client, engines, "q", nil, nil)

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for id, resp := range results {
		if !resp.Failed() {
			t.Errorf("%s should have failed", id)
		}
		if !strings.Contains(resp.Text(), "everything is down") {
			t.Errorf("%s text = %q, want readable error text", id, resp.Text())
		}
	}
}

func TestFanOut_CallsRunConcurrently(t *testing.T) {
	// Every call blocks until all calls have started. If the fan-out issued
	// calls sequentially this test would deadlock and time out.
	const n = 4
	engines := testEngines(n)

	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})

	go func() {
		started.Wait()
		close(release)
	}()

	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		started.Done()
		<-release
		return "done", nil
	}}

	results := FanOut(context.Background(), client, engines, "q", nil, nil)
	if len(results) != n {
		t.Fatalf("results = %d, want %d", len(results), n)
	}
}

func TestFanOut_PanicPropagates(t *testing.T) {
	// A worker panic must escape FanOut so the coordinator can absorb it.
	engines := testEngines(2)
	client := fakeCompleter{fn: func(persona, _ string) (string, error) {
		if persona == "persona-1" {
			panic("worker exploded")
		}
		return "fine", nil
	}}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic to propagate out of FanOut")
		}
	}()
	FanOut(context.Background(), client, engines, "q", nil, nil)
}

func TestCombinedPrompt(t *testing.T) {
	subs := []SubQuestion{
		{Question: "Sub one?", Relevance: "r1"},
		{Question: "Sub two?", Relevance: "r2"},
	}

	got := combinedPrompt("Main question?", subs)
	want := "Main question?\n\nSub one?\n\nSub two?"
	if got != want {
		t.Errorf("combinedPrompt = %q, want %q", got, want)
	}
}

func TestCombinedPrompt_NoSubQuestions(t *testing.T) {
	if got := combinedPrompt("Main?", nil); got != "Main?" {
		t.Errorf("combinedPrompt = %q, want %q", got, "Main?")
	}
}

func TestFanOut_PromptSharedByAllEngines(t *testing.T) {
	engines := testEngines(3)
	subs := []SubQuestion{{Question: "Sub?", Relevance: "r"}}

	var mu sync.Mutex
	prompts := make(map[string]bool)
	client := fakeCompleter{fn: func(_, user string) (string, error) {
		mu.Lock()
		prompts[user] = true
		mu.Unlock()
		return "ok", nil
	}}

	FanOut(context.Background(), client, engines, "Main?", subs, nil)

	if len(prompts) != 1 {
		t.Fatalf("distinct prompts = %d, want 1", len(prompts))
	}
	for prompt := range prompts {
		if prompt != "Main?\n\nSub?" {
			t.Errorf("prompt = %q, want combined question text", prompt)
		}
	}
}
