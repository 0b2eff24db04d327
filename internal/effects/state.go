package effects

import (
	"github.com/scarydoors/jokerforge/internal/types"
)

func (g *generator) editHandSize(p types.Params) Result {
	v, config := g.value(p, "value", "hand_size", 1)
	d := delta(p.String("operation", "add"), "G.hand.config.card_limit", v)
	return Result{
		Setup:           []string{"G.hand:change_size(" + d + ")"},
		Colour:          "G.C.BLUE",
		ConfigVariables: config,
		Message:         `"Hand Size changed!"`,
	}
}

func (g *generator) editHands(p types.Params) Result {
	v, config := g.value(p, "value", "hands", 1)
	d := delta(p.String("operation", "add"), "G.GAME.current_round.hands_left", v)
	return Result{
		Setup: []string{
			"G.GAME.round_resets.hands = G.GAME.round_resets.hands + " + d,
			"ease_hands_played(" + d + ")",
		},
		Colour:          "G.C.BLUE",
		ConfigVariables: config,
		Message:         `"Hands changed!"`,
	}
}

func (g *generator) editDiscards(p types.Params) Result {
	v, config := g.value(p, "value", "discards", 1)
	d := delta(p.String("operation", "add"), "G.GAME.current_round.discards_left", v)
	return Result{
		Setup: []string{
			"G.GAME.round_resets.discards = G.GAME.round_resets.discards + " + d,
			"ease_discard(" + d + ")",
		},
		Colour:          "G.C.RED",
		ConfigVariables: config,
		Message:         `"Discards changed!"`,
	}
}

func (g *generator) editJokerSlots(p types.Params) Result {
	v, config := g.value(p, "value", "joker_slots", 1)
	d := delta(p.String("operation", "add"), "G.jokers.config.card_limit", v)
	return Result{
		Setup:           []string{"G.jokers.config.card_limit = G.jokers.config.card_limit + " + d},
		Colour:          "G.C.DARK_EDITION",
		ConfigVariables: config,
		Message:         `"Joker Slots changed!"`,
	}
}

func (g *generator) editAnte(p types.Params) Result {
	v, config := g.value(p, "value", "ante", 1)
	d := delta(p.String("operation", "add"), "G.GAME.round_resets.ante", v)
	return Result{
		Setup: []string{
			"ease_ante(" + d + ")",
			"G.GAME.round_resets.blind_ante = (G.GAME.round_resets.blind_ante or G.GAME.round_resets.ante) + " + d,
		},
		Colour:          "G.C.FILTER",
		ConfigVariables: config,
		Message:         `"Ante changed!"`,
	}
}

// modifyInternalVariable updates one of the entity's own counters. The
// variable is declared with a zero default; the amount is used inline.
func (g *generator) modifyInternalVariable(p types.Params) Result {
	name := p.String("variable_name", "var1")
	field := g.resolver.Field(name)
	amount := g.resolver.Resolve(p.Raw("value", 1))

	var update string
	switch p.String("operation", "increment") {
	case "decrement":
		update = field + " = " + field + " - (" + amount + ")"
	case "set":
		update = field + " = " + amount
	case "multiply":
		update = field + " = " + field + " * (" + amount + ")"
	case "divide":
		update = field + " = " + field + " / (" + amount + ")"
	case "reset":
		update = field + " = 0"
	default:
		update = field + " = " + field + " + " + amount
	}

	r := Result{Setup: []string{update}, Colour: "G.C.GREEN"}
	if types.IsIdentifier(name) {
		r.ConfigVariables = []string{name + " = 0"}
	}
	if cv, ok := g.resolver.ConfigVariable(p.Raw("value", nil)); ok {
		r.ConfigVariables = append(r.ConfigVariables, cv.Declaration())
	}
	return r
}
