// internal/rules/conditions.go
package rules

import (
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

/*
 * Condition dispatch.
 *
 * generate maps a condition type to its generator. Every generator decodes its
 * params into a typed struct first, with a default for every field, and then
 * renders Lua. Unknown types return false and are omitted from the chain.
 *
 * Output contract: a generator returns a single boolean expression. Output
 * with a top-level "and"/"or" is parenthesized by wrapTopLevel so it cannot
 * change the precedence of the surrounding chain.
 */

func (c *Compiler) generate(trigger types.TriggerID, cond types.Condition) (string, bool) {
	p := cond.Params

	var code string
	switch cond.Type {
	// Hand and card properties
	case types.ConditionHandType:
		code = handType(trigger, decodeHandType(p))
	case types.ConditionCardRank:
		code = cardProperty(trigger, decodeQuantifier(p), rankPredicate(decodeRank(p)))
	case types.ConditionCardSuit:
		code = cardProperty(trigger, decodeQuantifier(p), suitPredicate(decodeSuit(p)))
	case types.ConditionCardEnhancement:
		code = cardProperty(trigger, decodeQuantifier(p), enhancementPredicate(p.String("enhancement", "any")))
	case types.ConditionCardSeal:
		code = cardProperty(trigger, decodeQuantifier(p), sealPredicate(p.String("seal", "any")))
	case types.ConditionCardEdition:
		code = cardProperty(trigger, decodeQuantifier(p), editionPredicate(p.String("edition", "any")))

	// Counters and limits
	case types.ConditionPlayerMoney:
		code = c.counter("G.GAME.dollars", decodeComparison(p))
	case types.ConditionRemainingHands:
		code = c.counter("G.GAME.current_round.hands_left", decodeComparison(p))
	case types.ConditionRemainingDiscards:
		code = c.counter("G.GAME.current_round.discards_left", decodeComparison(p))
	case types.ConditionHandsPlayed:
		code = c.counter("G.GAME.current_round.hands_played", decodeComparison(p))
	case types.ConditionJokerCount:
		code = c.counter("#G.jokers.cards", decodeComparison(p))
	case types.ConditionHandSize:
		code = c.counter("G.hand.config.card_limit", decodeComparison(p))
	case types.ConditionDeckSize:
		code = c.counter(deckSizeExpr(p.String("size_type", "remaining")), decodeComparison(p))
	case types.ConditionAnteLevel:
		code = c.counter("G.GAME.round_resets.ante", decodeComparison(p))
	case types.ConditionRoundNumber:
		code = c.counter("G.GAME.round", decodeComparison(p))
	case types.ConditionCardCount:
		code = c.counter(cardCountExpr(trigger, p.String("card_scope", "scoring")), decodeComparison(p))
	case types.ConditionConsumableCount:
		code = c.counter(consumableCountExpr(p.String("consumable_type", "any")), decodeComparison(p))

	// Firsts and blinds
	case types.ConditionFirstPlayedHand:
		code = "G.GAME.current_round.hands_played == 0"
	case types.ConditionFirstDiscardedHand:
		code = "G.GAME.current_round.discards_used == 0"
	case types.ConditionBlindType:
		code = blindType(p.String("blind_type", "small"))
	case types.ConditionBossBlindActive:
		code = "G.GAME.blind.boss and not G.GAME.blind.disabled"

	// Other
	case types.ConditionSpecificJoker:
		code = specificJoker(p.String("operation", "has"), p.String("joker_key", "j_joker"))
	case types.ConditionInternalVariable:
		// Declared with a zero default in the entity config block.
		code = c.counter(c.resolver.Field(p.String("variable_name", "var1")), decodeComparison(p))
	case types.ConditionPokerHandBeenPlayed:
		code = "G.GAME.hands[context.scoring_name] and G.GAME.hands[context.scoring_name].played_this_round > 1"
	case types.ConditionVoucherRedeemed:
		code = "G.GAME.used_vouchers[" + types.LuaString(p.String("voucher", "v_overstock_norm")) + "] == true"
	case types.ConditionGenericCompare:
		cmp := decodeComparison(p)
		code = compare(c.resolver.Resolve(p.Raw("value1", 0)), cmp.Operator, c.resolver.Resolve(p.Raw("value2", 0)))

	default:
		return "", false
	}

	if code == "" {
		return "", false
	}
	return wrapTopLevel(code), true
}

// comparisonParams is the shape shared by every counter condition.
type comparisonParams struct {
	Operator Comparison
	Value    any
}

func decodeComparison(p types.Params) comparisonParams {
	return comparisonParams{
		Operator: ParseComparison(p.String("operator", string(CmpGreaterThan))),
		Value:    p.Raw("value", 1),
	}
}

// counter compares a game-state read against the resolved comparison value.
func (c *Compiler) counter(lhs string, cmp comparisonParams) string {
	return compare(lhs, cmp.Operator, c.resolver.Resolve(cmp.Value))
}

func deckSizeExpr(sizeType string) string {
	if sizeType == "total" {
		return "#G.playing_cards"
	}
	return "#G.deck.cards"
}

func cardCountExpr(trigger types.TriggerID, scope string) string {
	if scope == "all" {
		return "#(context.full_hand or {})"
	}
	if trigger.Scope() == types.ScopeHand {
		return "#(" + trigger.Cards() + " or {})"
	}
	return "#(context.scoring_hand or {})"
}

func consumableCountExpr(set string) string {
	if set == "any" {
		return "#G.consumeables.cards"
	}
	return countWhere("G.consumeables.cards", "consumable", "consumable.ability.set == "+types.LuaString(set))
}

func blindType(kind string) string {
	switch strings.ToLower(kind) {
	case "big":
		return `G.GAME.blind:get_type() == "Big"`
	case "boss":
		return "G.GAME.blind.boss"
	default:
		return `G.GAME.blind:get_type() == "Small"`
	}
}

func specificJoker(operation, key string) string {
	if !strings.HasPrefix(key, "j_") {
		key = "j_" + key
	}
	find := "next(SMODS.find_card(" + types.LuaString(key) + "))"
	if operation == "does_not_have" {
		return "not " + find
	}
	return find
}

// handTypeParams selects a poker hand and how it is matched.
type handTypeParams struct {
	Value    string
	Contains bool
}

func decodeHandType(p types.Params) handTypeParams {
	return handTypeParams{
		Value:    p.String("value", "High Card"),
		Contains: p.String("operator", "equals") == "contains",
	}
}

func handType(trigger types.TriggerID, hp handTypeParams) string {
	name := types.LuaString(hp.Value)
	if trigger == types.TriggerHandDiscarded {
		return "G.FUNCS.get_poker_hand_info(" + trigger.Cards() + ") == " + name
	}
	if hp.Contains {
		return "next(context.poker_hands[" + name + "] or {})"
	}
	return "context.scoring_name == " + name
}

// wrapTopLevel parenthesizes code when it contains "and" or "or" outside of
// any parentheses, brackets or string literals.
func wrapTopLevel(code string) string {
	if hasTopLevelLogic(code) {
		return "(" + code + ")"
	}
	return code
}

func hasTopLevelLogic(code string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ' ', '\n', '\t':
			if depth == 0 && (keywordAt(code, i+1, "and") || keywordAt(code, i+1, "or")) {
				return true
			}
		}
	}
	return false
}

func keywordAt(code string, i int, kw string) bool {
	if !strings.HasPrefix(code[i:], kw) {
		return false
	}
	end := i + len(kw)
	return end == len(code) || code[end] == ' ' || code[end] == '\n' || code[end] == '\t' || code[end] == '('
}
