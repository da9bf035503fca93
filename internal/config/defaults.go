package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/minigames.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in tuning. It matches defaults/minigames.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Trainline: TrainlineConfig{
			LevelAward: 100,
			Levels: []TrainlineLine{
				{
					Line:       "4",
					Direction:  "north to south",
					Stops:      []string{"Woodlawn", "Bedford Park Blvd", "Mosholu Parkway"},
					StartOrder: []string{"Bedford Park Blvd", "Woodlawn", "Mosholu Parkway"},
					TimeLimit:  20,
				},
				{
					Line:       "L",
					Direction:  "west to east",
					Stops:      []string{"8 Av", "6 Av", "14 St–Union Sq", "3 Av"},
					StartOrder: []string{"3 Av", "8 Av", "14 St–Union Sq", "6 Av"},
					TimeLimit:  15,
				},
				{
					Line:       "F",
					Direction:  "north to south",
					Stops:      []string{"42 St–Bryant Pk", "34 St–Herald Sq", "23 St", "14 St"},
					StartOrder: []string{"14 St", "42 St–Bryant Pk", "23 St", "34 St–Herald Sq"},
					TimeLimit:  10,
				},
				{
					Line:       "A",
					Direction:  "south to north",
					Stops:      []string{"125 St", "145 St", "168 St", "175 St", "181 St"},
					StartOrder: []string{"181 St", "125 St", "168 St", "145 St", "175 St"},
					TimeLimit:  10,
				},
				{
					Line:       "2",
					Direction:  "north to south",
					Stops:      []string{"Wakefield–241 St", "Nereid Av", "233 St", "225 St", "219 St"},
					StartOrder: []string{"219 St", "Wakefield–241 St", "233 St", "Nereid Av", "225 St"},
					TimeLimit:  10,
				},
				{
					Line:       "1",
					Direction:  "south to north",
					Stops:      []string{"125 St", "137 St–City College", "145 St", "157 St", "168 St", "181 St"},
					StartOrder: []string{"181 St", "125 St", "157 St", "145 St", "168 St", "137 St–City College"},
					TimeLimit:  10,
				},
			},
		},
		Prize: PrizeConfig{
			Boxes:       3,
			MinPoints:   100,
			MaxPoints:   400,
			RevealDelay: time.Second,
			TimeLimit:   20,
		},
		Rush: RushConfig{
			Tick:              100 * time.Millisecond,
			SpawnInterval:     1500 * time.Millisecond,
			ProgressIncrement: 2,
			StageSize:         20,
			BaseSpeed:         1.2,
			SpeedIncrement:    0.2,
			FieldWidth:        110,
			PlayerX:           5,
			PlayerStartY:      50,
			MoveStep:          10,
			HitBoxX:           5,
			HitBoxY:           10,
			SpawnMinY:         5,
			SpawnMaxY:         95,
			WinBonus:          1000,
			TimeLimit:         20,
		},
		Catchtrain: CatchtrainConfig{
			Frame: 16 * time.Millisecond,
			World: CatchtrainWorld{
				Width:   120,
				Height:  60,
				GroundY: 55,
			},
			Physics: CatchtrainPhysics{
				Speed:        15,
				Gravity:      30,
				JumpVelocity: 18,
			},
			Player: CatchtrainBox{
				X:      5,
				Width:  3,
				Height: 4,
			},
			Obstacles: CatchtrainHazards{
				Count:  4,
				Width:  3,
				Height: 3,
				MinX:   15,
				Margin: 10,
				MinGap: 21,
			},
			Door: CatchtrainBox{
				Width:  5,
				Height: 4,
			},
			WinBonus:  500,
			TimeLimit: 20,
		},
	}
}
