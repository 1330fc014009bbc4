package pricing

import (
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
)

// SurgeEnv is the evaluation environment for a city's surge rule expression,
// e.g. "peak ? 1.5 : 1.0" or "hour >= 22 ? 1.2 : (peak ? 1.5 : 1.0)".
type SurgeEnv struct {
	Hour    int  `expr:"hour"`
	Weekday int  `expr:"weekday"`
	Peak    bool `expr:"peak"`
}

func CompileSurgeRule(rule string) (*vm.Program, error) {
	return expr.Compile(rule, expr.Env(SurgeEnv{}), expr.AsFloat64())
}

// Surge evaluates a compiled rule. A nil program or a failed evaluation means
// no surge - pricing must never fail a query.
func Surge(program *vm.Program, now time.Time, peak bool) float64 {
	if program == nil {
		return 1.0
	}

	result, err := expr.Run(program, SurgeEnv{
		Hour:    now.Hour(),
		Weekday: int(now.Weekday()),
		Peak:    peak,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Surge rule evaluation failed, using 1.0")
		return 1.0
	}

	multiplier, ok := result.(float64)
	if !ok || multiplier <= 0 {
		return 1.0
	}

	return multiplier
}
