// internal/types/rules.go
package types

/*
 * Domain types for rule compilation.
 *
 * Provides Rule, ConditionGroup, Condition, Effect and RandomGroup structures
 * consumed by internal/rules (conditions) and internal/effects (effects).
 * JSON tags follow the editor's export format, including the snake_case
 * chance fields on random groups.
 *
 * Key types:
 *   - Rule: trigger + AND-combined condition groups + effects + random groups
 *   - ConditionGroup: conditions joined left-to-right by per-condition operators
 *   - Condition: one typed predicate, optionally negated
 *   - Effect: one typed action with an optional custom message
 *   - RandomGroup: effects gated by a numerator/denominator probability draw
 *
 * Operator attachment: Condition.Operator joins the condition to its right
 * neighbour. The last condition's operator is never read.
 */

// Rule is one trigger-condition-effect unit authored in the editor.
type Rule struct {
	ID              string           `json:"id"`
	Trigger         TriggerID        `json:"trigger"`
	ConditionGroups []ConditionGroup `json:"conditionGroups"`
	Effects         []Effect         `json:"effects"`
	RandomGroups    []RandomGroup    `json:"randomGroups,omitempty"`
}

// ConditionGroup is a run of conditions, AND-combined with sibling groups.
type ConditionGroup struct {
	ID         string        `json:"id"`
	Operator   LogicOperator `json:"operator"`
	Conditions []Condition   `json:"conditions"`
}

// Condition is a single predicate. Params shape is defined per Type.
type Condition struct {
	ID       string        `json:"id"`
	Type     ConditionType `json:"type"`
	Negate   bool          `json:"negate"`
	Operator LogicOperator `json:"operator,omitempty"` // join to the next condition
	Params   Params        `json:"params"`
}

// Effect is a single action. Params shape is defined per Type.
type Effect struct {
	ID            string     `json:"id"`
	Type          EffectType `json:"type"`
	Params        Params     `json:"params"`
	CustomMessage string     `json:"customMessage,omitempty"`
}

// RandomGroup fires its effects with probability numerator/denominator.
type RandomGroup struct {
	ID                string   `json:"id"`
	ChanceNumerator   float64  `json:"chance_numerator"`
	ChanceDenominator float64  `json:"chance_denominator"`
	Effects           []Effect `json:"effects"`
}

// JoinOperator returns the operator placed between the condition at index i
// and the one after it. Falls back to the group operator, then to "and".
func (g ConditionGroup) JoinOperator(i int) LogicOperator {
	if i >= 0 && i < len(g.Conditions) && g.Conditions[i].Operator.Valid() {
		return g.Conditions[i].Operator
	}
	if g.Operator.Valid() {
		return g.Operator
	}
	return LogicAnd
}

// SingleCondition returns a synthetic copy of the rule holding only c.
// Condition generators receive this so they see the trigger without any
// group context.
func (r Rule) SingleCondition(c Condition) Rule {
	return Rule{
		ID:      r.ID,
		Trigger: r.Trigger,
		ConditionGroups: []ConditionGroup{{
			ID:         r.ID + "_single",
			Operator:   LogicAnd,
			Conditions: []Condition{c},
		}},
	}
}

// Condition returns the only condition of a synthetic single-condition rule.
func (r Rule) Condition() (Condition, bool) {
	if len(r.ConditionGroups) != 1 || len(r.ConditionGroups[0].Conditions) != 1 {
		return Condition{}, false
	}
	return r.ConditionGroups[0].Conditions[0], true
}

// AllEffects returns regular effects followed by every random group's effects.
func (r Rule) AllEffects() []Effect {
	all := make([]Effect, 0, len(r.Effects))
	all = append(all, r.Effects...)
	for _, g := range r.RandomGroups {
		all = append(all, g.Effects...)
	}
	return all
}

// InternalVariables returns the counter names the rules read or write
// through internal_variable conditions and modify_internal_variable effects,
// in first-seen order.
func InternalVariables(rs []Rule) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(p Params) {
		name := p.String("variable_name", "var1")
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, r := range rs {
		for _, group := range r.ConditionGroups {
			for _, cond := range group.Conditions {
				if cond.Type == ConditionInternalVariable {
					add(cond.Params)
				}
			}
		}
		for _, e := range r.AllEffects() {
			if e.Type == EffectModifyInternalVariable {
				add(e.Params)
			}
		}
	}
	return names
}

// ShortID returns the random group id truncated to its seed-key prefix.
func (g RandomGroup) ShortID() string {
	if len(g.ID) <= RandomGroupIDPrefixLength {
		return g.ID
	}
	return g.ID[:RandomGroupIDPrefixLength]
}
