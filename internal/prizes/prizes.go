// Package prizes maps accumulated bonus points to MetroCard reward tiers
// and shop codes.
package prizes

import "sort"

// Level is a reward tier name.
type Level string

const (
	Bronze   Level = "bronze"
	Silver   Level = "silver"
	Gold     Level = "gold"
	Platinum Level = "platinum"
)

// Prize is a reward unlocked at MinScore points.
type Prize struct {
	Name        string
	Description string
	Code        string
	Level       Level
	MinScore    int
}

// ShopCode is a redeemable code for the merch shop.
type ShopCode struct {
	Code        string
	Description string
	TopScore    bool
}

// TopScoreThreshold is the score from which shop codes are top-score codes.
const TopScoreThreshold = 2000

// FallbackCode is handed out when no code source is available.
const FallbackCode = "HHNYC2024"

// Table is an ordered set of prizes.
type Table struct {
	prizes []Prize // Ascending by MinScore
}

// NewTable builds a table; the order of prizes does not matter.
func NewTable(prizes ...Prize) *Table {
	sorted := append([]Prize(nil), prizes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinScore < sorted[j].MinScore })
	return &Table{prizes: sorted}
}

// Default returns the four MetroCard tiers.
func Default() *Table {
	return NewTable(
		Prize{
			Name:        "Bronze MetroCard",
			Description: "You're getting the hang of it! Keep riding to unlock more rewards.",
			Code:        "BRONZE2024",
			Level:       Bronze,
			MinScore:    500,
		},
		Prize{
			Name:        "Silver MetroCard",
			Description: "You're becoming a real New Yorker! Great job!",
			Code:        "SILVER2024",
			Level:       Silver,
			MinScore:    1000,
		},
		Prize{
			Name:        "Gold MetroCard",
			Description: "Amazing! You're a true subway expert!",
			Code:        "GOLD2024",
			Level:       Gold,
			MinScore:    1500,
		},
		Prize{
			Name:        "Platinum MetroCard",
			Description: "Perfect score! You're a legendary subway master!",
			Code:        "PLATINUM2024",
			Level:       Platinum,
			MinScore:    2000,
		},
	)
}

// Lookup returns the highest prize the score unlocks.
func (t *Table) Lookup(score int) (Prize, bool) {
	for i := len(t.prizes) - 1; i >= 0; i-- {
		if score >= t.prizes[i].MinScore {
			return t.prizes[i], true
		}
	}
	return Prize{}, false
}

// Next returns the first prize the score has not reached yet.
func (t *Table) Next(score int) (Prize, bool) {
	for _, p := range t.prizes {
		if score < p.MinScore {
			return p, true
		}
	}
	return Prize{}, false
}

// All returns the prizes in ascending order.
func (t *Table) All() []Prize {
	return append([]Prize(nil), t.prizes...)
}

// ShopCodeFor returns the shop code for a score. A tier code is used when
// one is unlocked; otherwise every player gets the fallback code.
func (t *Table) ShopCodeFor(score int) ShopCode {
	if p, ok := t.Lookup(score); ok {
		return ShopCode{Code: p.Code, Description: p.Description, TopScore: score >= TopScoreThreshold}
	}
	return ShopCode{
		Code:        FallbackCode,
		Description: "Thanks for playing! Here's your code to use in our shop.",
	}
}
