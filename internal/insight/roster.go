package insight

import "github.com/dataglance/dataglance/internal/config"

// ModelSpec is one roster slot: a model id plus the generation settings
// chosen for determinism (temperatures are low across the board, lowest for
// reasoning-style tasks).
type ModelSpec struct {
	ID          string
	Name        string
	Temperature float64
	MaxTokens   int
}

// Roster is the ordered three-model fallback chain: primary, secondary,
// fallback.
type Roster struct {
	Primary   ModelSpec
	Secondary ModelSpec
	Fallback  ModelSpec
}

// DefaultRoster mirrors the configured roster slots.
func DefaultRoster(cfg config.InsightConfig) Roster {
	return Roster{
		Primary: ModelSpec{
			ID:          cfg.PrimaryModel,
			Name:        "primary",
			Temperature: cfg.PrimaryTemperature,
			MaxTokens:   cfg.PrimaryMaxTokens,
		},
		Secondary: ModelSpec{
			ID:          cfg.SecondaryModel,
			Name:        "secondary",
			Temperature: cfg.SecondaryTemperature,
			MaxTokens:   cfg.SecondaryMaxTokens,
		},
		Fallback: ModelSpec{
			ID:          cfg.FallbackModel,
			Name:        "fallback",
			Temperature: cfg.FallbackTemperature,
			MaxTokens:   cfg.FallbackMaxTokens,
		},
	}
}

// order returns the models to try for an analysis type, preferred model
// first, never repeating a slot.
//
// Reasoning-heavy tasks prefer the secondary model (lowest temperature);
// everything else starts with the primary. The remaining slots follow in
// roster order so the total attempt chain is always three models.
func (r Roster) order(analysisType string) []ModelSpec {
	switch analysisType {
	case "reasoning", "custom_analysis", "data_profiling", "question_generation":
		return []ModelSpec{r.Secondary, r.Primary, r.Fallback}
	default:
		return []ModelSpec{r.Primary, r.Secondary, r.Fallback}
	}
}

// preferred returns the first model that would be tried for an analysis
// type. Its id participates in the cache key so different task routings
// cache independently.
func (r Roster) preferred(analysisType string) ModelSpec {
	return r.order(analysisType)[0]
}
