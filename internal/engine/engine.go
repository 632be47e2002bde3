// Package engine composes the fee schedule with product data and seller
// preferences into the calculations served by the API and the CLI.
package engine

import (
	"log/slog"

	"github.com/donaldgifford/rocketgrowth-margin/internal/metrics"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/fees"
	domain "github.com/donaldgifford/rocketgrowth-margin/pkg/types"
)

// Engine runs calculations against a fixed fee schedule.
type Engine struct {
	schedule *fees.Schedule
	prefs    domain.Preferences
	log      *slog.Logger
}

// NewEngine creates an Engine over schedule. A nil schedule uses
// fees.DefaultSchedule.
func NewEngine(schedule *fees.Schedule, opts ...EngineOption) *Engine {
	if schedule == nil {
		schedule = fees.DefaultSchedule()
	}
	eng := &Engine{
		schedule: schedule,
		prefs: domain.Preferences{
			TargetMarginRate: fees.DefaultTargetMargin,
			DisplayMode:      domain.DisplaySimple,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithPreferences sets the preferences used when a request carries none.
func WithPreferences(p domain.Preferences) EngineOption {
	return func(e *Engine) {
		e.prefs = p
	}
}

// Schedule returns the schedule the engine computes against.
func (eng *Engine) Schedule() *fees.Schedule {
	return eng.schedule
}

// Preferences returns the default preferences.
func (eng *Engine) Preferences() domain.Preferences {
	return eng.prefs
}

// Ready reports whether the schedule is usable.
func (eng *Engine) Ready() error {
	return eng.schedule.Validate()
}

// CategoryMatch is the resolved commission data for a category path.
type CategoryMatch struct {
	Keyword         string        `json:"keyword"`
	Rate            float64       `json:"rate"`
	Matched         bool          `json:"matched"`
	RecommendedSize fees.SizeTier `json:"recommended_size"`
}

// ResolveCategory resolves the commission keyword, rate and typical size
// for path.
func (eng *Engine) ResolveCategory(path []string) CategoryMatch {
	_, matched := eng.schedule.Match(path)
	m := CategoryMatch{
		Keyword:         eng.schedule.MatchedKeyword(path),
		Rate:            eng.schedule.ResolveRate(path),
		Matched:         matched,
		RecommendedSize: fees.RecommendSize(path),
	}
	if !matched {
		metrics.CategoryFallbackTotal.Inc()
		eng.log.Debug("category fell back to default rate",
			"path", path,
			"rate", m.Rate,
		)
	}
	return m
}
