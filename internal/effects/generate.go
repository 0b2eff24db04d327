package effects

import (
	"strconv"

	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

// generator carries per-call state shared by all effect generators.
type generator struct {
	resolver      *gamevar.Resolver
	defaultColour string
	namer         *Namer
	locals        map[string]int
}

func (c *Compiler) newGenerator() *generator {
	g := &generator{
		resolver:      c.Resolver,
		defaultColour: c.DefaultColour,
		namer:         c.Namer,
		locals:        make(map[string]int),
	}
	if g.resolver == nil {
		g.resolver = gamevar.NewResolver(nil, "")
	}
	if g.defaultColour == "" {
		g.defaultColour = DefaultColour
	}
	if g.namer == nil {
		g.namer = NewNamer()
	}
	return g
}

// generate dispatches one effect to its generator.
func (g *generator) generate(e types.Effect) Result {
	p := e.Params

	switch e.Type {
	// Scoring and economy
	case types.EffectAddChips:
		return g.scoring(p, "chips", 10, "G.C.CHIPS")
	case types.EffectAddMult:
		return g.scoring(p, "mult", 5, "G.C.MULT")
	case types.EffectApplyXMult:
		return g.scoring(p, "Xmult", 1.5, "G.C.MULT")
	case types.EffectApplyXChips:
		return g.scoring(p, "x_chips", 1.5, "G.C.CHIPS")
	case types.EffectAddDollars:
		return g.scoring(p, "dollars", 5, "G.C.MONEY")
	case types.EffectSetDollars:
		return g.setDollars(p)
	case types.EffectRetriggerCards:
		return g.retrigger(p)
	case types.EffectLevelUpHand:
		return g.levelUpHand(p)

	// Cards and deck
	case types.EffectDestroySelf:
		return g.destroySelf(p)
	case types.EffectDestroyCard:
		return destroyCard()
	case types.EffectCopyCard:
		return g.copyCard(p)
	case types.EffectCreateJoker:
		return g.createJoker(p)
	case types.EffectCreateConsumable:
		return g.createConsumable(p)
	case types.EffectAddCardToDeck:
		return g.addCardToDeck(p)

	// Game state
	case types.EffectEditHandSize:
		return g.editHandSize(p)
	case types.EffectEditHands:
		return g.editHands(p)
	case types.EffectEditDiscards:
		return g.editDiscards(p)
	case types.EffectEditJokerSlots:
		return g.editJokerSlots(p)
	case types.EffectEditAnte:
		return g.editAnte(p)
	case types.EffectModifyInternalVariable:
		return g.modifyInternalVariable(p)

	// Other
	case types.EffectShowMessage:
		return showMessage(p)
	case types.EffectBalance:
		return Result{Statement: "balance = true", Colour: "G.C.PURPLE"}
	case types.EffectSwapChipsMult:
		return Result{Statement: "swap = true", Colour: "G.C.PURPLE"}
	case types.EffectSetSellValue:
		return g.setSellValue(p)
	case types.EffectDisableBossBlind:
		return disableBossBlind()

	default:
		return Result{}
	}
}

// value resolves params[key] for use in a statement. Literal numbers are
// stored as a configuration variable named from base, game variables carry
// their own declaration, and bare names read an existing variable.
func (g *generator) value(p types.Params, key, base string, def float64) (string, []string) {
	raw := p.Raw(key, def)

	if cv, ok := g.resolver.ConfigVariable(raw); ok {
		return g.resolver.Resolve(raw), []string{cv.Declaration()}
	}
	if gamevar.IsGameVar(raw) {
		return g.resolver.Resolve(raw), nil
	}
	if f, ok := types.ToFloat64(raw); ok {
		name := g.namer.Next(base)
		return g.resolver.Field(name), []string{name + " = " + types.FormatNumber(f)}
	}
	if s, ok := raw.(string); ok && s != "" {
		return g.resolver.Resolve(raw), nil
	}
	name := g.namer.Next(base)
	return g.resolver.Field(name), []string{name + " = " + types.FormatNumber(def)}
}

// local returns a Lua local name unique within this compile call.
func (g *generator) local(base string) string {
	g.locals[base]++
	if c := g.locals[base]; c > 1 {
		return base + "_" + strconv.Itoa(c)
	}
	return base
}

// delta renders the change to apply to current for an add, subtract or set
// operation.
func delta(operation, current, amount string) string {
	switch operation {
	case "subtract", "remove", "decrease":
		return "-(" + amount + ")"
	case "set":
		return "(" + amount + ") - " + current
	default:
		return amount
	}
}

// event wraps body in a G.E_MANAGER event returning true.
func event(body ...string) string {
	s := "G.E_MANAGER:add_event(Event({\n    func = function()\n"
	for _, line := range body {
		s += indentLines(indentLines(line)) + "\n"
	}
	s += "        return true\n    end\n}))"
	return s
}
