package effects

import (
	"github.com/scarydoors/jokerforge/internal/types"
)

// scoring renders a single "<key> = <value>" return field. The config
// variable shares the return key's name in lower case.
func (g *generator) scoring(p types.Params, key string, def float64, colour string) Result {
	base := key
	switch key {
	case "Xmult":
		base = "xmult"
	case "x_chips":
		base = "xchips"
	}
	v, config := g.value(p, "value", base, def)
	return Result{
		Statement:       key + " = " + v,
		Colour:          colour,
		ConfigVariables: config,
	}
}

// setDollars moves the player's money to the target amount.
func (g *generator) setDollars(p types.Params) Result {
	v, config := g.value(p, "value", "target_dollars", 10)
	return Result{
		Statement:       "dollars = " + v + " - G.GAME.dollars",
		Colour:          "G.C.MONEY",
		ConfigVariables: config,
	}
}

func (g *generator) retrigger(p types.Params) Result {
	v, config := g.value(p, "value", "repetitions", 1)
	return Result{
		Statement:       "repetitions = " + v,
		Colour:          "G.C.RED",
		ConfigVariables: config,
		Message:         "localize('k_again_ex')",
	}
}

// levelUpHand levels the played hand, a named hand or a random hand.
func (g *generator) levelUpHand(p types.Params) Result {
	v, config := g.value(p, "value", "levels", 1)
	r := Result{
		Colour:          "G.C.SECONDARY_SET.Planet",
		ConfigVariables: config,
		Message:         "localize('k_level_up_ex')",
	}

	switch p.String("hand_selection", "current") {
	case "specific":
		r.Statement = "level_up = " + v + ",\nlevel_up_hand = " + types.LuaString(p.String("specific_hand", "High Card"))
	case "random":
		hand := g.local("random_hand")
		r.Setup = []string{
			"local " + hand + " = pseudorandom_element(G.handlist, pseudoseed('level_up_hand'))",
		}
		r.Statement = "level_up = " + v + ",\nlevel_up_hand = " + hand
	default:
		r.Statement = "level_up = " + v
	}
	return r
}
