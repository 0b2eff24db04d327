package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarydoors/jokerforge/internal/types"
)

func sampleEntity(key string) types.Entity {
	return types.Entity{
		Key:  key,
		Name: "Greedy",
		Rules: []types.Rule{
			{
				ID:      "rule-1",
				Trigger: types.TriggerHandPlayed,
				ConditionGroups: []types.ConditionGroup{{
					ID: "g1",
					Conditions: []types.Condition{{
						ID:     "c1",
						Type:   types.ConditionPlayerMoney,
						Params: types.Params{"operator": "greater_than", "value": "GAMEVAR:current_ante|1|3"},
					}},
				}},
				Effects: []types.Effect{
					{ID: "e1", Type: types.EffectAddChips, Params: types.Params{"value": 10}},
				},
			},
			{
				ID:      "rule-2",
				Trigger: types.TriggerCardScored,
				Effects: []types.Effect{
					{ID: "e2", Type: types.EffectAddChips, Params: types.Params{"value": 20}},
				},
				RandomGroups: []types.RandomGroup{{
					ID:                "rg-12345678",
					ChanceNumerator:   1,
					ChanceDenominator: 3,
					Effects: []types.Effect{
						{ID: "e3", Type: types.EffectAddDollars, Params: types.Params{"value": 2}},
					},
				}},
			},
		},
	}
}

func TestCompileEntity(t *testing.T) {
	out, err := CompileEntity(sampleEntity("greedy"), Options{Verify: true})
	require.NoError(t, err)

	assert.Equal(t, "j_greedy", out.NamePrefix)
	require.Len(t, out.Rules, 2)

	first := out.Rules[0]
	assert.Equal(t, "context.joker_main", first.Context)
	assert.Equal(t, "G.GAME.dollars > card.ability.extra.currentante + (G.GAME.round_resets.ante)", first.Condition)
	assert.Equal(t, "chips = card.ability.extra.chips", first.Effects.Statement)

	second := out.Rules[1]
	assert.Equal(t, "", second.Condition)
	// The shared namer keeps the second rule's chips distinct.
	assert.Equal(t, "chips = card.ability.extra.chips2", second.Effects.Statement)
	assert.True(t, second.Effects.IsRandomChance)
	assert.Contains(t, second.Effects.PreReturnCode, "'group_0_rg-12345', 1, card.ability.extra.odds, 'j_greedy'")

	assert.Equal(t, []string{
		"chips = 10",
		"chips2 = 20",
		"odds = 3",
		"dollars = 2",
		"currentante = 3",
	}, out.ConfigVariables)
	assert.Len(t, out.ETag, 64)
}

func TestCompileEntity_InternalVariables(t *testing.T) {
	e := types.Entity{
		Key: "counter",
		Rules: []types.Rule{
			{
				ID:      "rule-1",
				Trigger: types.TriggerHandPlayed,
				Effects: []types.Effect{
					{ID: "e1", Type: types.EffectAddChips, Params: types.Params{"value": 10}},
				},
			},
			{
				ID:      "rule-2",
				Trigger: types.TriggerHandPlayed,
				ConditionGroups: []types.ConditionGroup{{
					ID: "g1",
					Conditions: []types.Condition{
						{ID: "c1", Type: types.ConditionInternalVariable, Params: types.Params{"variable_name": "streak", "operator": "greater_than", "value": 2}},
						{ID: "c2", Type: types.ConditionInternalVariable, Params: types.Params{"variable_name": "chips", "operator": "equals", "value": 0}},
					},
				}},
				Effects: []types.Effect{
					{ID: "e2", Type: types.EffectAddMult, Params: types.Params{"value": 4}},
				},
			},
		},
	}

	out, err := CompileEntity(e, Options{Verify: true})
	require.NoError(t, err)

	// "chips" is a counter read in a later rule, so the literal moves aside.
	assert.Equal(t, "chips = card.ability.extra.chips2", out.Rules[0].Effects.Statement)
	assert.Equal(t, []string{
		"chips2 = 10",
		"mult = 4",
		"streak = 0",
		"chips = 0",
	}, out.ConfigVariables)
}

func TestCompileEntity_Deterministic(t *testing.T) {
	a, err := CompileEntity(sampleEntity("greedy"), Options{})
	require.NoError(t, err)
	b, err := CompileEntity(sampleEntity("greedy"), Options{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompileEntity_ETagTracksInput(t *testing.T) {
	base, err := CompileEntity(sampleEntity("greedy"), Options{})
	require.NoError(t, err)

	changed := sampleEntity("greedy")
	changed.Rules[0].Effects[0].Params["value"] = 11
	other, err := CompileEntity(changed, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, base.ETag, other.ETag)

	prefixed, err := CompileEntity(sampleEntity("greedy"), Options{NamePrefix: "j_other"})
	require.NoError(t, err)
	assert.NotEqual(t, base.ETag, prefixed.ETag)
}

func TestCompileEntity_Errors(t *testing.T) {
	_, err := CompileEntity(sampleEntity("greedy"), Options{NamePrefix: "bad prefix"})
	assert.True(t, errors.Is(err, types.ErrInvalidNamePrefix))

	big := types.Entity{Key: "big", Rules: make([]types.Rule, types.MaxRulesPerEntity+1)}
	_, err = CompileEntity(big, Options{})
	assert.True(t, errors.Is(err, types.ErrTooManyRules))

	_, err = CompileEntity(sampleEntity("greedy"), Options{MaxRules: 1})
	assert.True(t, errors.Is(err, types.ErrTooManyRules))
}

func TestCompileEntities_PreservesOrder(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e", "f"}
	entities := make([]types.Entity, len(keys))
	for i, k := range keys {
		entities[i] = sampleEntity(k)
	}

	out, err := CompileEntities(context.Background(), entities, Options{}, 3)
	require.NoError(t, err)
	require.Len(t, out, len(keys))
	for i, k := range keys {
		assert.Equal(t, k, out[i].Key)
		assert.Equal(t, "j_"+k, out[i].NamePrefix)
	}
}

func TestCompileEntities_FirstErrorWins(t *testing.T) {
	entities := []types.Entity{sampleEntity("ok"), sampleEntity("not valid")}

	_, err := CompileEntities(context.Background(), entities, Options{}, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidNamePrefix))
	assert.Contains(t, err.Error(), "entity not valid")
}

func TestVerify_RejectsBrokenFragment(t *testing.T) {
	out := EntityOutput{Rules: []RuleOutput{{RuleID: "r1", Condition: "G.GAME.dollars >"}}}

	err := Verify(out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOutput))
	assert.Contains(t, err.Error(), "r1")
}
