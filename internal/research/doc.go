// Package research implements the three-stage research orchestration
// pipeline: question decomposition, concurrent multi-engine fan-out, and
// cross-engine synthesis.
//
// # Pipeline
//
// A [Pipeline] answers one free-form research question per invocation:
//
//  1. The [Decomposer] splits the question into ordered sub-questions. It
//     never fails outward; when the upstream call fails or returns
//     unparseable text it substitutes three deterministic fallback
//     sub-questions.
//  2. [FanOut] sends the combined prompt to every configured [Engine]
//     concurrently and waits for all calls to settle. One engine's failure
//     never cancels or blocks the others; each engine always yields exactly
//     one [EngineResponse].
//  3. The [Synthesizer] asks the backend for a structured cross-engine
//     synthesis and degrades gracefully: a failed call yields a canned
//     report, unparseable text yields a fallback report that preserves the
//     complete raw synthesis.
//
// Failures are converted into ordinary data (tagged responses, sentinel
// text, degraded reports) at the lowest possible stage. Only an unexpected
// fault escaping every stage-local recovery surfaces as an error, and only
// from [Pipeline.Run].
//
// # Usage
//
//	engines := research.EnginesFromConfig(cfg.Engines)
//	p, _ := research.NewPipeline(research.PipelineConfig{
//	    Client:  capability.NewClient(cfg.Capability),
//	    Engines: engines,
//	})
//	result, err := p.Run(ctx, "What causes tidal locking?")
package research
