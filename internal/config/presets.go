package config

// ApplyPreset scales the tuning for a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		scaleTimeLimits(cfg, 1.5)
		cfg.Rush.BaseSpeed *= 0.8
		cfg.Rush.SpeedIncrement *= 0.5
		cfg.Catchtrain.Obstacles.Count = max(cfg.Catchtrain.Obstacles.Count-2, 0)
	case DifficultyHard:
		scaleTimeLimits(cfg, 0.75)
		cfg.Rush.BaseSpeed *= 1.25
		cfg.Rush.SpeedIncrement *= 1.5
		cfg.Rush.SpawnInterval = cfg.Rush.SpawnInterval * 2 / 3
		cfg.Catchtrain.Obstacles.Count++
	}
}

func scaleTimeLimits(cfg *Config, factor float64) {
	scale := func(sec int) int {
		return max(int(float64(sec)*factor), 1)
	}

	levels := make([]TrainlineLine, len(cfg.Trainline.Levels))
	copy(levels, cfg.Trainline.Levels)
	for i := range levels {
		levels[i].TimeLimit = scale(levels[i].TimeLimit)
	}
	cfg.Trainline.Levels = levels

	cfg.Prize.TimeLimit = scale(cfg.Prize.TimeLimit)
	cfg.Rush.TimeLimit = scale(cfg.Rush.TimeLimit)
	cfg.Catchtrain.TimeLimit = scale(cfg.Catchtrain.TimeLimit)
}
