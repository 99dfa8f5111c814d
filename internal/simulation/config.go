package simulation

// Weights blend player attributes into a round-strength score.
type Weights struct {
	Aim         float64
	Reaction    float64
	Consistency float64
	GameSense   float64
	Utility     float64
	Positioning float64
	Clutch      float64
}

// DefaultWeights leans on the five core attributes.
func DefaultWeights() Weights {
	return Weights{
		Aim:         1,
		Reaction:    1,
		Consistency: 1,
		GameSense:   1,
		Utility:     1,
		Positioning: 0.5,
		Clutch:      0.5,
	}
}

func (w Weights) total() float64 {
	return w.Aim + w.Reaction + w.Consistency + w.GameSense + w.Utility + w.Positioning + w.Clutch
}

// Config tunes the round model.
type Config struct {
	OvertimeRounds int
	MaxOvertimes   int
	MomentumWeight float64
	MomentumCap    int
	MinRoundChance float64
	Weights        Weights
}

// DefaultConfig is MR3 overtime, five overtimes before sudden death, light momentum.
func DefaultConfig() Config {
	return Config{
		OvertimeRounds: 6,
		MaxOvertimes:   5,
		MomentumWeight: 0.02,
		MomentumCap:    3,
		MinRoundChance: 0.05,
		Weights:        DefaultWeights(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.OvertimeRounds <= 0 || c.OvertimeRounds%2 != 0 {
		c.OvertimeRounds = def.OvertimeRounds
	}
	if c.MaxOvertimes < 0 {
		c.MaxOvertimes = 0
	}
	if c.MomentumCap < 0 {
		c.MomentumCap = 0
	}
	if c.MinRoundChance <= 0 || c.MinRoundChance >= 0.5 {
		c.MinRoundChance = def.MinRoundChance
	}
	if c.Weights.total() <= 0 {
		c.Weights = def.Weights
	}
	return c
}
