package effects

import (
	"strconv"
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

// compileRandomGroups compiles every group into a probability-guarded block.
// Odds variables are named per distinct denominator in first-seen order and
// declared in config ahead of each group's own variables.
func (g *generator) compileRandomGroups(groups []types.RandomGroup, namePrefix string, config *configSet) ([]string, []string) {
	if len(groups) == 0 {
		return nil, nil
	}

	odds := make(map[string]string)
	var blocks, canUse []string

	for i, group := range groups {
		denominator := types.FormatNumber(group.ChanceDenominator)
		oddsVar, ok := odds[denominator]
		if !ok {
			oddsVar = g.namer.Next("odds")
			odds[denominator] = oddsVar
		}
		config.add(oddsVar + " = " + denominator)

		inner := g.compileList(group.Effects)
		config.add(inner.configVariables...)
		canUse = append(canUse, inner.canUse...)

		blocks = append(blocks, g.guard(i, group, oddsVar, namePrefix, inner))
	}
	return blocks, canUse
}

// guard wraps a compiled group in its SMODS.pseudorandom_probability check.
func (g *generator) guard(index int, group types.RandomGroup, oddsVar, namePrefix string, inner compiledList) string {
	seed := "group_" + strconv.Itoa(index) + "_" + group.ShortID()

	var b strings.Builder
	b.WriteString("if SMODS.pseudorandom_probability(card, '" + seed + "', ")
	b.WriteString(types.FormatNumber(group.ChanceNumerator) + ", ")
	b.WriteString(g.resolver.Field(oddsVar) + ", '" + namePrefix + "') then\n")

	for _, line := range inner.setup {
		b.WriteString(indentLines(line) + "\n")
	}
	if inner.statement != "" {
		body := inner.statement
		if inner.colour != g.defaultColour {
			body += ",\ncolour = " + inner.colour
		}
		b.WriteString("    SMODS.calculate_effect({\n")
		b.WriteString(indentLines(indentLines(body)) + "\n")
		b.WriteString("    }, card)\n")
	}
	b.WriteString("end")
	return b.String()
}
