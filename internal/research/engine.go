package research

import "github.com/quorumhq/quorum/internal/config"

// Engine is one configured research engine: a stable identifier plus the
// persona instruction that differentiates it. All engines are routed through
// the one shared Completer; a future multi-backend setup would change how an
// Engine resolves its client, not the fan-out algorithm.
type Engine struct {
	ID      string
	Persona string
}

// EnginesFromConfig converts configured engine entries into Engines,
// preserving their order. The set is fixed at process configuration time.
func EnginesFromConfig(cfgs []config.EngineConfig) []Engine {
	engines := make([]Engine, 0, len(cfgs))
	for _, c := range cfgs {
		engines = append(engines, Engine{ID: c.ID, Persona: c.Persona})
	}
	return engines
}
