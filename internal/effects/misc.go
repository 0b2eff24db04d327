package effects

import (
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

func showMessage(p types.Params) Result {
	return Result{
		Colour:  p.String("colour", DefaultColour),
		Message: types.LuaString(p.String("text", "Hello!")),
	}
}

// setSellValue raises or sets the sell value of this card or every joker.
func (g *generator) setSellValue(p types.Params) Result {
	v, config := g.value(p, "value", "sell_value", 1)
	set := p.String("operation", "add") == "set"

	update := func(target string) []string {
		extra := target + ".ability.extra_value"
		if set {
			return []string{
				extra + " = (" + v + ") - (" + target + ".sell_cost - (" + extra + " or 0))",
				target + ":set_cost()",
			}
		}
		return []string{
			extra + " = (" + extra + " or 0) + " + v,
			target + ":set_cost()",
		}
	}

	var lines []string
	if p.String("target", "self") == "all_jokers" {
		lines = append(lines, "for _, joker_card in ipairs(G.jokers.cards) do")
		for _, l := range update("joker_card") {
			lines = append(lines, "    "+l)
		}
		lines = append(lines, "end")
	} else {
		lines = update("card")
	}

	return Result{
		Setup:           []string{strings.Join(lines, "\n")},
		Colour:          "G.C.MONEY",
		ConfigVariables: config,
		Message:         "localize('k_val_up')",
	}
}

func disableBossBlind() Result {
	lines := []string{
		"if G.GAME.blind and G.GAME.blind.boss and not G.GAME.blind.disabled then",
		indentLines(event(
			"G.GAME.blind:disable()",
			"play_sound('timpani')",
		)),
		"end",
	}
	return Result{
		Setup:        []string{strings.Join(lines, "\n")},
		Colour:       "G.C.GREEN",
		Message:      "localize('ph_boss_disabled')",
		CustomCanUse: "G.GAME.blind and G.GAME.blind.boss and not G.GAME.blind.disabled",
	}
}
