package effects

import (
	"strings"

	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

/*
 * Effect compilation.
 *
 * Regular path:
 *   1. Each effect is dispatched to its generator (unknown types are inert).
 *   2. Setup code is hoisted into PreReturnCode, newline-joined, in order.
 *   3. Main statements are chained in order. Every effect after the first is
 *      nested one level deeper in an "extra = { ... }" table so repeated
 *      keys stay distinct. A nested level carries its own colour when it is
 *      not the default.
 *   4. The overall colour is the first non-default colour.
 *
 * Random path (see random.go): each group compiles like the regular path and
 * is wrapped in a probability guard appended to PreReturnCode.
 *
 * Config variables are deduplicated by name: regular effects first, then for
 * each random group its odds variable followed by its effects' variables.
 * Internal variable names are reserved before any name is generated, so a
 * counter called "chips" pushes add_chips to "chips2".
 */

// Compiler compiles effect lists. The zero value is usable.
type Compiler struct {
	Resolver      *gamevar.Resolver
	DefaultColour string
	// Namer is shared across calls when set; otherwise each Compile call
	// starts from a fresh Namer. A shared Namer should have every internal
	// variable of the entity reserved before the first call.
	Namer *Namer
}

// Compile compiles effects with a default Compiler.
func Compile(effects []types.Effect, groups []types.RandomGroup, namePrefix string) Output {
	var c Compiler
	return c.Compile(effects, groups, namePrefix)
}

// Compile compiles a rule's effects and random groups.
func (c *Compiler) Compile(effects []types.Effect, groups []types.RandomGroup, namePrefix string) Output {
	g := c.newGenerator()
	g.namer.Reserve(types.InternalVariables([]types.Rule{{Effects: effects, RandomGroups: groups}})...)
	config := newConfigSet()

	regular := g.compileList(effects)
	config.add(regular.configVariables...)

	var setup []string
	setup = append(setup, regular.setup...)

	blocks, randomCanUse := g.compileRandomGroups(groups, namePrefix, config)
	setup = append(setup, blocks...)

	return Output{
		Statement:       regular.statement,
		Colour:          regular.colour,
		PreReturnCode:   strings.Join(setup, "\n"),
		IsRandomChance:  len(groups) > 0,
		ConfigVariables: config.list(),
		CustomCanUse:    joinCanUse(append(regular.canUse, randomCanUse...)),
	}
}

// compiledList is an intermediate result for one list of effects.
type compiledList struct {
	statement       string
	colour          string
	setup           []string
	configVariables []string
	canUse          []string
}

// compileList runs the regular path over effects.
func (g *generator) compileList(effects []types.Effect) compiledList {
	out := compiledList{colour: g.defaultColour}
	var levels []Result

	for _, effect := range effects {
		r := g.generate(effect)
		if effect.CustomMessage != "" {
			r.Message = types.LuaString(effect.CustomMessage)
		}

		out.setup = append(out.setup, r.Setup...)
		out.configVariables = append(out.configVariables, r.ConfigVariables...)
		if r.CustomCanUse != "" {
			out.canUse = append(out.canUse, r.CustomCanUse)
		}
		if r.empty() {
			continue
		}
		if out.colour == g.defaultColour && r.Colour != "" && r.Colour != g.defaultColour {
			out.colour = r.Colour
		}
		levels = append(levels, r)
	}

	out.statement = g.chain(levels, false)
	return out
}

// chain renders levels as nested table fields. withColour also emits the
// colour of the outermost level.
func (g *generator) chain(levels []Result, withColour bool) string {
	if len(levels) == 0 {
		return ""
	}

	head := levels[0]
	var fields []string
	if s := strings.TrimSpace(head.Statement); s != "" {
		fields = append(fields, s)
	}
	if head.Message != "" {
		fields = append(fields, "message = "+head.Message)
	}
	if withColour && head.Colour != "" && head.Colour != g.defaultColour {
		fields = append(fields, "colour = "+head.Colour)
	}
	if len(levels) > 1 {
		fields = append(fields, "extra = {\n"+indentLines(g.chain(levels[1:], true))+"\n}")
	}
	return strings.Join(fields, ",\n")
}

// joinCanUse joins distinct predicates with "and".
func joinCanUse(predicates []string) string {
	seen := make(map[string]bool)
	var parts []string
	for _, p := range predicates {
		if !seen[p] {
			seen[p] = true
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " and ")
}

func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}
