package gamevar

import (
	"sort"

	"github.com/scarydoors/jokerforge/internal/types"
)

// Extract walks every condition, effect and random-group effect of rules and
// returns the configuration variables their game-variable params need,
// deduplicated by slug in first-seen order. Param keys are visited in sorted
// order so the result is deterministic.
func (r *Resolver) Extract(rules []types.Rule) []ConfigVariable {
	var out []ConfigVariable
	seen := make(map[string]bool)

	visit := func(p types.Params) {
		for _, key := range sortedKeys(p) {
			cv, ok := r.ConfigVariable(p[key])
			if !ok || seen[cv.Name] {
				continue
			}
			seen[cv.Name] = true
			out = append(out, cv)
		}
	}

	for _, rule := range rules {
		for _, group := range rule.ConditionGroups {
			for _, cond := range group.Conditions {
				visit(cond.Params)
			}
		}
		for _, effect := range rule.AllEffects() {
			visit(effect.Params)
		}
	}
	return out
}

// Extract is a convenience wrapper using the default catalogue and namespace.
func Extract(rules []types.Rule) []ConfigVariable {
	return NewResolver(nil, "").Extract(rules)
}

func sortedKeys(p types.Params) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
