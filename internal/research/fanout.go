package research

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/quorumhq/quorum/internal/logging"
)

// FanOut issues one completion per engine, concurrently, and waits for all
// calls to settle. It is never fail-fast: one engine's failure does not
// cancel or block the others. Every result is keyed by its engine ID as the
// call settles, so assembly cannot misalign if the engine set or completion
// order changes.
//
// The returned map always has exactly one entry per engine. Worker panics
// propagate out of FanOut and are absorbed by the pipeline coordinator.
func FanOut(ctx context.Context, client Completer, engines []Engine, question string, subs []SubQuestion, logger *logging.Logger) map[string]EngineResponse {
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithStage("fanout")

	prompt := combinedPrompt(question, subs)

	results := make(map[string]EngineResponse, len(engines))
	var mu sync.Mutex
	var wg conc.WaitGroup

	for _, engine := range engines {
		wg.Go(func() {
			start := time.Now()
			content, err := client.Complete(ctx, engine.Persona, prompt)
			elapsed := time.Since(start).Milliseconds()

			var resp EngineResponse
			if err != nil {
				logger.WithEngine(engine.ID).Warn("engine call failed",
					"error", err.Error(), "duration_ms", elapsed)
				resp = ErrResponse(err.Error())
			} else {
				logger.WithEngine(engine.ID).Debug("engine call succeeded",
					"chars", len(content), "duration_ms", elapsed)
				resp = OkResponse(content)
			}

			mu.Lock()
			results[engine.ID] = resp
			mu.Unlock()
		})
	}

	wg.Wait()
	return results
}

// combinedPrompt concatenates the main question and every sub-question, in
// order, separated by blank lines.
func combinedPrompt(question string, subs []SubQuestion) string {
	parts := make([]string, 0, len(subs)+1)
	parts = append(parts, question)
	for _, s := range subs {
		parts = append(parts, s.Question)
	}
	return strings.Join(parts, "\n\n")
}
