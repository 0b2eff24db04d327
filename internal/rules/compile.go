// internal/rules/compile.go
package rules

import (
	"strings"

	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

/*
 * Condition chain compilation.
 *
 * Compiles a Rule's condition groups into one Lua boolean expression.
 *
 * Compilation workflow:
 *   1. Each condition is compiled from a synthetic single-condition rule so
 *      generators never see group context. Unknown types are skipped.
 *   2. Negated conditions become "not (X)".
 *   3. Inside a group, the operator stored on the previous compiled condition
 *      joins it to the next one (left attachment). A group with 2+ compiled
 *      conditions is parenthesized as a unit.
 *   4. Groups are joined with literal "and" as "(g1) and (g2)". A single
 *      group is returned unwrapped.
 *
 * Left attachment: [A{or}, B{and}, C] compiles to "(A or B and C)". Lua gives
 * "and" higher precedence, so this reads as A or (B and C). The editor relies
 * on this convention; it is preserved as-is.
 *
 * Empty result: "" means no guard. Callers must not emit it as an expression.
 */

// CompileChain compiles rule's conditions with the default compiler.
func CompileChain(rule types.Rule) string {
	return defaultCompiler.CompileChain(rule)
}

// CompileChain compiles rule's condition groups into a single expression.
func (c *Compiler) CompileChain(rule types.Rule) string {
	groups := make([]string, 0, len(rule.ConditionGroups))
	for _, group := range rule.ConditionGroups {
		if code := c.compileGroup(rule, group); code != "" {
			groups = append(groups, code)
		}
	}

	switch len(groups) {
	case 0:
		return ""
	case 1:
		return groups[0]
	}

	wrapped := make([]string, len(groups))
	for i, g := range groups {
		wrapped[i] = "(" + g + ")"
	}
	return strings.Join(wrapped, " and ")
}

// compiledCondition remembers which source condition produced code so the
// join operator can be read from it.
type compiledCondition struct {
	code  string
	index int
}

// compileGroup joins a group's compiled conditions left to right.
func (c *Compiler) compileGroup(rule types.Rule, group types.ConditionGroup) string {
	parts := make([]compiledCondition, 0, len(group.Conditions))
	for i, cond := range group.Conditions {
		code, ok := c.CompileCondition(rule.SingleCondition(cond))
		if !ok {
			continue
		}
		parts = append(parts, compiledCondition{code: code, index: i})
	}
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(parts[0].code)
	for k := 1; k < len(parts); k++ {
		op := group.JoinOperator(parts[k-1].index)
		b.WriteString(" ")
		b.WriteString(string(op))
		b.WriteString(" ")
		b.WriteString(parts[k].code)
	}

	if len(parts) > 1 {
		return "(" + b.String() + ")"
	}
	return b.String()
}

// CompileCondition compiles the only condition of a single-condition rule,
// applying negation. Returns false when the condition contributes nothing.
func (c *Compiler) CompileCondition(single types.Rule) (string, bool) {
	cond, ok := single.Condition()
	if !ok {
		return "", false
	}
	code, ok := c.generate(single.Trigger, cond)
	if !ok || code == "" {
		return "", false
	}
	if cond.Negate {
		return "not (" + code + ")", true
	}
	return code, true
}

// Compiler holds the collaborators condition generators need.
// A Compiler has no mutable state and is safe for concurrent use.
type Compiler struct {
	resolver *gamevar.Resolver
}

// NewCompiler creates a condition compiler. A nil resolver selects the
// default catalogue and namespace.
func NewCompiler(resolver *gamevar.Resolver) *Compiler {
	if resolver == nil {
		resolver = gamevar.NewResolver(nil, "")
	}
	return &Compiler{resolver: resolver}
}

var defaultCompiler = NewCompiler(nil)
