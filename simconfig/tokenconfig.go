package simconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// TokenKind identifies the scoring category a TokenPlacement belongs to.
// It does not carry the observing team's perspective (gold vs fools_gold);
// that classification happens from the marker code at vision time.
type TokenKind int

const (
	TokenOre TokenKind = iota
	TokenGold
)

// TokenPlacement is one token read from the token position config, fully
// sanitised and assigned its marker code.
type TokenPlacement struct {
	Kind TokenKind
	Team int // gold only; meaningless for ore
	Code int
	X, Y float64
}

const arenaBound = 2.945

// LoadTokenConfig reads "Token Position Config.json": a JSON object
// mapping token-type name ("Ore", "Team k Gold") to a list of [x, y]
// positions. Coordinates are sanitised to the arena square; an entry
// whose coordinates don't decode as numbers is dropped rather than
// defaulted, since there is no sensible default position for a token.
// Codes are assigned sequentially starting at each type's base: ore
// starts at 32, team k gold starts at 42+3k.
func LoadTokenConfig(path string) ([]TokenPlacement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("simconfig: reading token config %q: %w", path, err)
	}

	var records map[string][][2]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("simconfig: parsing token config %q: %w", path, err)
	}

	var placements []TokenPlacement

	if positions, ok := records["Ore"]; ok {
		code := 32
		for _, pos := range positions {
			x, xok := SanitiseFloatNoDefault(pos[0], -arenaBound, arenaBound)
			y, yok := SanitiseFloatNoDefault(pos[1], -arenaBound, arenaBound)
			if !xok || !yok {
				continue
			}
			placements = append(placements, TokenPlacement{
				Kind: TokenOre,
				Code: code,
				X:    x,
				Y:    y,
			})
			code++
		}
	}

	for team := 0; team < 4; team++ {
		key := fmt.Sprintf("Team %d Gold", team)
		positions, ok := records[key]
		if !ok {
			continue
		}
		code := 42 + 3*team
		for _, pos := range positions {
			x, xok := SanitiseFloatNoDefault(pos[0], -arenaBound, arenaBound)
			y, yok := SanitiseFloatNoDefault(pos[1], -arenaBound, arenaBound)
			if !xok || !yok {
				continue
			}
			placements = append(placements, TokenPlacement{
				Kind: TokenGold,
				Team: team,
				Code: code,
				X:    x,
				Y:    y,
			})
			code++
		}
	}

	return placements, nil
}
