// internal/rules/compile_test.go
package rules

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/types"
)

// money builds a player_money condition "G.GAME.dollars > value" joined to its
// right neighbour by op.
func money(id string, value float64, op types.LogicOperator) types.Condition {
	return types.Condition{
		ID:       id,
		Type:     types.ConditionPlayerMoney,
		Operator: op,
		Params:   types.Params{"operator": "greater_than", "value": value},
	}
}

func ruleWith(groups ...types.ConditionGroup) types.Rule {
	return types.Rule{ID: "rule-001", Trigger: types.TriggerHandPlayed, ConditionGroups: groups}
}

func group(conds ...types.Condition) types.ConditionGroup {
	return types.ConditionGroup{ID: "g", Operator: types.LogicAnd, Conditions: conds}
}

func TestCompileChain_SimpleRule(t *testing.T) {
	got := CompileChain(ruleWith(group(money("c1", 10, ""))))
	if got != "G.GAME.dollars > 10" {
		t.Errorf("CompileChain() = %q, want %q", got, "G.GAME.dollars > 10")
	}
}

func TestCompileChain_LeftAttachment(t *testing.T) {
	rule := ruleWith(group(
		money("a", 1, types.LogicOr),
		money("b", 2, types.LogicAnd),
		money("c", 3, ""),
	))

	want := "(G.GAME.dollars > 1 or G.GAME.dollars > 2 and G.GAME.dollars > 3)"
	if got := CompileChain(rule); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_GroupOperatorFallback(t *testing.T) {
	g := group(money("a", 1, ""), money("b", 2, ""))
	g.Operator = types.LogicOr

	want := "(G.GAME.dollars > 1 or G.GAME.dollars > 2)"
	if got := CompileChain(ruleWith(g)); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_MultipleGroups(t *testing.T) {
	rule := ruleWith(
		group(money("a", 1, "")),
		group(types.Condition{ID: "b", Type: types.ConditionRoundNumber, Params: types.Params{"value": 2}}),
	)

	want := "(G.GAME.dollars > 1) and (G.GAME.round > 2)"
	if got := CompileChain(rule); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_MultiConditionGroupsAreDoubleWrapped(t *testing.T) {
	rule := ruleWith(
		group(money("a", 1, types.LogicOr), money("b", 2, "")),
		group(money("c", 3, "")),
	)

	want := "((G.GAME.dollars > 1 or G.GAME.dollars > 2)) and (G.GAME.dollars > 3)"
	if got := CompileChain(rule); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_Negation(t *testing.T) {
	c := money("a", 5, "")
	c.Negate = true

	if got := CompileChain(ruleWith(group(c))); got != "not (G.GAME.dollars > 5)" {
		t.Errorf("CompileChain() = %q", got)
	}
}

func TestCompileChain_Empty(t *testing.T) {
	tests := []struct {
		name string
		rule types.Rule
	}{
		{name: "no groups", rule: ruleWith()},
		{name: "empty group", rule: ruleWith(group())},
		{name: "only unknown conditions", rule: ruleWith(group(types.Condition{ID: "x", Type: "does_not_exist"}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompileChain(tt.rule); got != "" {
				t.Errorf("CompileChain() = %q, want empty", got)
			}
		})
	}
}

func TestCompileChain_UnknownConditionSkipped(t *testing.T) {
	rule := ruleWith(group(
		money("a", 1, types.LogicOr),
		types.Condition{ID: "x", Type: "does_not_exist", Operator: types.LogicAnd},
		money("c", 3, ""),
	))

	// The operator is read from the previous compiled condition.
	want := "(G.GAME.dollars > 1 or G.GAME.dollars > 3)"
	if got := CompileChain(rule); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_SingleCompiledConditionNotWrapped(t *testing.T) {
	rule := ruleWith(group(
		types.Condition{ID: "x", Type: "does_not_exist", Operator: types.LogicOr},
		money("a", 1, ""),
	))

	if got := CompileChain(rule); got != "G.GAME.dollars > 1" {
		t.Errorf("CompileChain() = %q", got)
	}
}

func TestCompileChain_GameVariableValue(t *testing.T) {
	c := types.Condition{
		ID:     "a",
		Type:   types.ConditionPlayerMoney,
		Params: types.Params{"operator": "less_equals", "value": "GAMEVAR:joker_count|2|0"},
	}

	want := "G.GAME.dollars <= (#G.jokers.cards) * 2"
	if got := CompileChain(ruleWith(group(c))); got != want {
		t.Errorf("CompileChain() = %q, want %q", got, want)
	}
}

func TestCompileChain_CustomNamespace(t *testing.T) {
	compiler := NewCompiler(gamevar.NewResolver(nil, "self.config"))
	c := types.Condition{
		ID:     "a",
		Type:   types.ConditionInternalVariable,
		Params: types.Params{"variable_name": "streak", "operator": "equals", "value": 3},
	}

	if got := compiler.CompileChain(ruleWith(group(c))); got != "self.config.streak == 3" {
		t.Errorf("CompileChain() = %q", got)
	}
}

// Property-based test: compilation is deterministic and joins exactly the
// conditions it was given.
func TestCompileChain_PropertyDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	build := func(ops []bool, groups int) types.Rule {
		rule := ruleWith()
		for g := 0; g < groups; g++ {
			var conds []types.Condition
			for i, or := range ops {
				op := types.LogicAnd
				if or {
					op = types.LogicOr
				}
				conds = append(conds, money("c", float64(i+1), op))
			}
			rule.ConditionGroups = append(rule.ConditionGroups, group(conds...))
		}
		return rule
	}

	properties.Property("same rule compiles to the same chain", prop.ForAll(
		func(ops []bool, groups int) bool {
			rule := build(ops, groups)
			return CompileChain(rule) == CompileChain(rule)
		},
		gen.SliceOfN(4, gen.Bool()),
		gen.IntRange(0, 3),
	))

	properties.Property("every condition appears once per group", prop.ForAll(
		func(ops []bool, groups int) bool {
			got := CompileChain(build(ops, groups))
			return strings.Count(got, "G.GAME.dollars >") == len(ops)*groups
		},
		gen.SliceOfN(3, gen.Bool()),
		gen.IntRange(0, 3),
	))

	properties.Property("groups are joined by and", prop.ForAll(
		func(groups int) bool {
			got := CompileChain(build([]bool{true}, groups))
			return strings.Count(got, ") and (") == groups-1
		},
		gen.IntRange(2, 5),
	))

	properties.TestingRun(t)
}
