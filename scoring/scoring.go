// Package scoring implements the token-contribution and per-team score
// rules over a world's current collision and zone-containment state.
package scoring

import (
	"github.com/roboarena/simulator/simconfig"
	"github.com/roboarena/simulator/simworld"
)

// claim is one potential (value, team) contribution for a token before
// the largest-magnitude pick.
type claim struct {
	value int
	team  int
}

// Scores computes the four per-team scores for the world's current
// state: each token's potential-scores reduction, summed per team,
// plus the zone-exit bonus.
func Scores(w *simworld.World) [4]int {
	var totals [4]int

	for _, token := range w.Tokens {
		value, team := tokenContribution(w, token)
		totals[team] += value
	}

	for team, robot := range w.Robots {
		if robot != nil && robot.HasLeftZone {
			totals[team]++
		}
	}

	return totals
}

// tokenContribution picks the single (value, team) pair a token
// contributes: the potential score of largest magnitude, first
// encountered on ties, or (0, team 0) if there are none at all.
func tokenContribution(w *simworld.World, token *simworld.Token) (int, int) {
	var claims []claim

	touchingTeams := touchingRobots(w, token)
	if len(touchingTeams) == 1 {
		claims = append(claims, claim{value: touchValue(token, touchingTeams[0]), team: touchingTeams[0]})
	}
	// More than one robot touching the token discards the entire
	// controlling set; zero touching contributes nothing here either.

	for team := 0; team < 4; team++ {
		inZone := false
		for _, id := range w.TokensInZone(team) {
			if id == token.ID {
				inZone = true
				break
			}
		}
		if inZone {
			claims = append(claims, claim{value: zoneValue(token, team), team: team})
		}
	}

	if len(claims) == 0 {
		return 0, 0
	}

	best := claims[0]
	for _, c := range claims[1:] {
		if abs(c.value) > abs(best.value) {
			best = c
		}
	}
	return best.value, best.team
}

// touchingRobots returns the teams whose scoring_collisions currently
// include this token, in team-number order.
func touchingRobots(w *simworld.World, token *simworld.Token) []int {
	var teams []int
	for team, touching := range w.ScoringCollisions {
		if touching[token.ID] {
			teams = append(teams, team)
		}
	}
	return teams
}

func touchValue(token *simworld.Token, team int) int {
	switch token.Kind {
	case simconfig.TokenOre:
		return 1
	default:
		if token.Team == team {
			return 3
		}
		return -1
	}
}

func zoneValue(token *simworld.Token, team int) int {
	switch token.Kind {
	case simconfig.TokenOre:
		return 5
	default:
		if token.Team == team {
			return 7
		}
		return -2
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
