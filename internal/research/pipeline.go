package research

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumhq/quorum/internal/errors"
	"github.com/quorumhq/quorum/internal/logging"
)

// PipelineConfig holds required dependencies for creating a Pipeline.
type PipelineConfig struct {
	Client  Completer       // Shared capability backend for every stage
	Engines []Engine        // Configured engine set, fixed for the process lifetime
	Logger  *logging.Logger // Optional; defaults to a no-op logger
}

// Pipeline coordinates the three research stages for one question at a time:
// decomposition, engine fan-out, and synthesis. Each stage recovers from its
// own failures and hands ordinary data to the next; the coordinator is the
// single place where an unexpected, unrecovered fault becomes an error.
//
// A Pipeline is stateless across invocations and safe for concurrent use.
type Pipeline struct {
	client      Completer
	engines     []Engine
	decomposer  *Decomposer
	synthesizer *Synthesizer
	logger      *logging.Logger
}

// NewPipeline creates a Pipeline with the given configuration.
func NewPipeline(cfg PipelineConfig) (*Pipeline, error) {
	if cfg.Client == nil {
		return nil, errors.New("research: Client is required")
	}
	if len(cfg.Engines) == 0 {
		return nil, errors.New("research: at least one engine is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NopLogger()
	}

	return &Pipeline{
		client:      cfg.Client,
		engines:     cfg.Engines,
		decomposer:  NewDecomposer(cfg.Client, cfg.Logger),
		synthesizer: NewSynthesizer(cfg.Client, cfg.Logger),
		logger:      cfg.Logger,
	}, nil
}

// Engines returns the configured engine set in configuration order.
func (p *Pipeline) Engines() []Engine {
	return p.engines
}

// Run answers one research question. The returned Result always carries all
// five report fields and exactly one tool response per configured engine,
// however many upstream calls failed. Run returns an error only for an
// unexpected fault that escaped every stage-local recovery.
//
// Question validation is the boundary's responsibility; Run assumes a
// non-empty question.
func (p *Pipeline) Run(ctx context.Context, question string) (result *Result, err error) {
	// Stage-local recovery converts expected failures into data; anything
	// that still panics surfaces here as the single internal-error case.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.NewPipelineError("unexpected fault", fmt.Errorf("%v", r))
		}
	}()

	start := time.Now()
	p.logger.Info("research started", "engines", len(p.engines))

	subs := p.decomposer.Decompose(ctx, question)
	responses := FanOut(ctx, p.client, p.engines, question, subs, p.logger)
	report := p.synthesizer.Synthesize(ctx, question, subs, p.engines, responses)

	subQuestions := make([]string, 0, len(subs))
	for _, s := range subs {
		subQuestions = append(subQuestions, s.Question)
	}

	toolResponses := make(map[string]string, len(responses))
	for id, resp := range responses {
		toolResponses[id] = resp.Text()
	}

	p.logger.Info("research completed",
		"sub_questions", len(subQuestions),
		"duration_ms", time.Since(start).Milliseconds())

	return &Result{
		Report:        report,
		SubQuestions:  subQuestions,
		ToolResponses: toolResponses,
	}, nil
}
