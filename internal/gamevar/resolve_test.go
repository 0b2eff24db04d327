package gamevar

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/scarydoors/jokerforge/internal/types"
)

func TestResolve_Transforms(t *testing.T) {
	r := NewResolver(nil, "")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "identity transform emits bare read",
			value: "GAMEVAR:current_money|1|0",
			want:  "G.GAME.dollars",
		},
		{
			name:  "multiplier only",
			value: "GAMEVAR:current_money|2|0",
			want:  "(G.GAME.dollars) * 2",
		},
		{
			name:  "fractional multiplier",
			value: "GAMEVAR:joker_count|0.5|0",
			want:  "(#G.jokers.cards) * 0.5",
		},
		{
			name:  "offset only references config variable",
			value: "GAMEVAR:current_money|1|5",
			want:  "card.ability.extra.currentmoney + (G.GAME.dollars)",
		},
		{
			name:  "offset and multiplier",
			value: "GAMEVAR:hands_remaining|3|10",
			want:  "card.ability.extra.handsremaining + (G.GAME.current_round.hands_left) * 3",
		},
		{
			name:  "missing transform fields default to identity",
			value: "GAMEVAR:current_ante",
			want:  "G.GAME.round_resets.ante",
		},
		{
			name:  "malformed multiplier defaults to 1",
			value: "GAMEVAR:current_ante|abc|0",
			want:  "G.GAME.round_resets.ante",
		},
		{
			name:  "unknown id falls back to zero",
			value: "GAMEVAR:not_a_variable|2|4",
			want:  "0",
		},
		{
			name:  "bare config variable name",
			value: "chips",
			want:  "card.ability.extra.chips",
		},
		{
			name:  "non-identifier config name is bracketed",
			value: "my var",
			want:  `card.ability.extra["my var"]`,
		},
		{
			name:  "numeric string",
			value: "12",
			want:  "12",
		},
		{
			name:  "float",
			value: float64(1.5),
			want:  "1.5",
		},
		{
			name:  "int",
			value: 3,
			want:  "3",
		},
		{
			name:  "negative",
			value: float64(-4),
			want:  "-4",
		},
		{
			name:  "nil",
			value: nil,
			want:  "0",
		},
		{
			name:  "bool",
			value: true,
			want:  "0",
		},
		{
			name:  "map",
			value: map[string]any{"a": 1},
			want:  "0",
		},
		{
			name:  "empty string",
			value: "  ",
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.value)
			if got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolve_CustomNamespace(t *testing.T) {
	r := NewResolver(nil, "self.config")
	if got := r.Resolve("GAMEVAR:current_money|1|3"); got != "self.config.currentmoney + (G.GAME.dollars)" {
		t.Errorf("Resolve() = %q", got)
	}
	if got := r.Resolve("odds"); got != "self.config.odds" {
		t.Errorf("Resolve() = %q", got)
	}
}

func TestParse(t *testing.T) {
	ref, ok := Parse("GAMEVAR:hand_size|2.5|-1")
	if !ok {
		t.Fatal("Parse() ok = false, want true")
	}
	if ref.ID != "hand_size" || ref.Multiplier != 2.5 || ref.StartsFrom != -1 {
		t.Errorf("Parse() = %+v", ref)
	}
	if ref.String() != "GAMEVAR:hand_size|2.5|-1" {
		t.Errorf("String() = %q", ref.String())
	}

	if _, ok := Parse("hand_size"); ok {
		t.Error("Parse() accepted a bare name")
	}
	if _, ok := Parse(float64(3)); ok {
		t.Error("Parse() accepted a number")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Current Money":    "currentmoney",
		"Cards In Hand":    "cardsinhand",
		"Blinds Skipped":   "blindsskipped",
		"  Spaced  Out  ":  "spacedout",
		"Tarot's Used (#)": "tarotsused",
		"2 Pair Count":     "_2paircount",
		"snake_case_label": "snake_case_label",
		"ÜBER Count":       "bercount",
	}
	for label, want := range tests {
		if got := Slug(label); got != want {
			t.Errorf("Slug(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestConfigVariable(t *testing.T) {
	r := NewResolver(nil, "")

	cv, ok := r.ConfigVariable("GAMEVAR:current_money|2|5")
	if !ok {
		t.Fatal("ConfigVariable() ok = false")
	}
	if cv.Name != "currentmoney" || cv.Code != "G.GAME.dollars" || cv.StartsFrom != 5 || cv.Multiplier != 2 {
		t.Errorf("ConfigVariable() = %+v", cv)
	}
	if cv.Declaration() != "currentmoney = 5" {
		t.Errorf("Declaration() = %q", cv.Declaration())
	}

	for _, v := range []string{"GAMEVAR:current_money|1|0", "GAMEVAR:current_money|2|0", "GAMEVAR:current_money"} {
		if _, ok := r.ConfigVariable(v); ok {
			t.Errorf("ConfigVariable(%q) declared a variable the expression never reads", v)
		}
	}
	if _, ok := r.ConfigVariable("GAMEVAR:nope|1|4"); ok {
		t.Error("ConfigVariable() accepted unknown id")
	}
	if _, ok := r.ConfigVariable(float64(4)); ok {
		t.Error("ConfigVariable() accepted a literal")
	}
}

func TestExtract_DeduplicatesByLabel(t *testing.T) {
	rules := []types.Rule{
		{
			ID:      "r1",
			Trigger: types.TriggerHandPlayed,
			ConditionGroups: []types.ConditionGroup{{
				ID: "g1",
				Conditions: []types.Condition{{
					ID:     "c1",
					Type:   types.ConditionPlayerMoney,
					Params: types.Params{"operator": "greater_than", "value": "GAMEVAR:joker_count|1|2"},
				}},
			}},
			Effects: []types.Effect{
				{ID: "e1", Type: types.EffectAddChips, Params: types.Params{"value": "GAMEVAR:current_money|2|3"}},
				{ID: "e1b", Type: types.EffectAddChips, Params: types.Params{"value": "GAMEVAR:hand_size|2|0"}},
				{ID: "e2", Type: types.EffectAddMult, Params: types.Params{"value": "GAMEVAR:current_money|1|4"}},
			},
			RandomGroups: []types.RandomGroup{{
				ID:                "rg1",
				ChanceNumerator:   1,
				ChanceDenominator: 4,
				Effects: []types.Effect{
					{ID: "e3", Type: types.EffectAddDollars, Params: types.Params{"value": "GAMEVAR:current_ante|1|1"}},
					{ID: "e4", Type: types.EffectAddDollars, Params: types.Params{"value": "GAMEVAR:nope|1|1"}},
				},
			}},
		},
	}

	got := Extract(rules)
	want := []string{"jokercount", "currentmoney", "currentante"}
	if len(got) != len(want) {
		t.Fatalf("len(Extract()) = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Extract()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
	// First occurrence wins: multiplier 2, startsFrom 3.
	if got[1].Multiplier != 2 || got[1].StartsFrom != 3 {
		t.Errorf("currentmoney = %+v, want first-seen transform", got[1])
	}
}

// Property-based test: resolution is total and deterministic
func TestResolve_PropertyTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	r := NewResolver(nil, "")
	ids := make([]string, 0)
	for _, v := range Default().Variables() {
		ids = append(ids, v.ID)
	}
	ids = append(ids, "unknown_id")

	properties.Property("game variables always resolve to the same non-empty expression", prop.ForAll(
		func(id string, mult, start int) bool {
			value := Reference{ID: id, Multiplier: float64(mult), StartsFrom: float64(start)}.String()
			first := r.Resolve(value)
			second := r.Resolve(value)
			return first != "" && first == second
		},
		gen.OneConstOf(toInterfaces(ids)...),
		gen.IntRange(-5, 5),
		gen.IntRange(-5, 5),
	))

	properties.Property("arbitrary strings never produce an empty expression", prop.ForAll(
		func(s string) bool {
			return r.Resolve(s) != ""
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
