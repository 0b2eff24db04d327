package rules

import (
	"strconv"
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

// predicate renders a boolean test against the card expression it receives.
type predicate func(card string) string

// Quantifier says how many cards of a hand must match a card-property test.
type Quantifier string

const (
	QuantAny     Quantifier = "any"
	QuantAll     Quantifier = "all"
	QuantNone    Quantifier = "none"
	QuantExactly Quantifier = "exactly"
	QuantAtLeast Quantifier = "at_least"
)

type quantifierParams struct {
	Quantifier Quantifier
	Count      int
}

func decodeQuantifier(p types.Params) quantifierParams {
	q := Quantifier(p.String("quantifier", string(QuantAny)))
	switch q {
	case QuantAny, QuantAll, QuantNone, QuantExactly, QuantAtLeast:
	default:
		q = QuantAny
	}
	return quantifierParams{Quantifier: q, Count: p.Int("count", 1)}
}

// cardProperty applies pred to the trigger's card subject. Card-level
// triggers test context.other_card directly; everything else counts matches
// over the trigger's card list.
func cardProperty(trigger types.TriggerID, qp quantifierParams, pred predicate) string {
	if trigger.Scope() == types.ScopeCard {
		return pred(trigger.Card())
	}

	count := strconv.Itoa(qp.Count)
	var verdict string
	switch qp.Quantifier {
	case QuantAll:
		verdict = "#cards > 0 and count == #cards"
	case QuantNone:
		verdict = "count == 0"
	case QuantExactly:
		verdict = "count == " + count
	case QuantAtLeast:
		verdict = "count >= " + count
	default:
		verdict = "count > 0"
	}

	return "(function()\n" +
		"    local cards = " + trigger.Cards() + " or {}\n" +
		"    local count = 0\n" +
		"    for _, playing_card in ipairs(cards) do\n" +
		"        if " + pred("playing_card") + " then\n" +
		"            count = count + 1\n" +
		"        end\n" +
		"    end\n" +
		"    return " + verdict + "\n" +
		"end)()"
}

// countWhere counts the entries of list satisfying cond, with each entry
// bound to name.
func countWhere(list, name, cond string) string {
	return "(function()\n" +
		"    local count = 0\n" +
		"    for _, " + name + " in ipairs(" + list + " or {}) do\n" +
		"        if " + cond + " then\n" +
		"            count = count + 1\n" +
		"        end\n" +
		"    end\n" +
		"    return count\n" +
		"end)()"
}

type rankParams struct {
	RankType string
	Rank     int
	Group    string
}

var rankIDs = map[string]int{
	"J": 11, "JACK": 11,
	"Q": 12, "QUEEN": 12,
	"K": 13, "KING": 13,
	"A": 14, "ACE": 14,
}

// rankID maps "2".."10", face letters and names to Balatro card ids.
func rankID(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if id, ok := rankIDs[s]; ok {
		return id
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 2 && n <= 14 {
		return n
	}
	return 14
}

func decodeRank(p types.Params) rankParams {
	return rankParams{
		RankType: p.String("rank_type", "specific"),
		Rank:     rankID(p.String("specific_rank", "A")),
		Group:    p.String("rank_group", "face"),
	}
}

func rankPredicate(rp rankParams) predicate {
	return func(card string) string {
		id := card + ":get_id()"
		if rp.RankType != "group" {
			return id + " == " + strconv.Itoa(rp.Rank)
		}
		switch rp.Group {
		case "even":
			return "(" + id + " <= 10 and " + id + " % 2 == 0)"
		case "odd":
			return "((" + id + " <= 10 and " + id + " % 2 == 1) or " + id + " == 14)"
		case "numbered":
			return "(" + id + " >= 2 and " + id + " <= 10)"
		default:
			return card + ":is_face()"
		}
	}
}

type suitParams struct {
	SuitType string
	Suit     string
	Group    string
}

func decodeSuit(p types.Params) suitParams {
	return suitParams{
		SuitType: p.String("suit_type", "specific"),
		Suit:     p.String("specific_suit", "Hearts"),
		Group:    p.String("suit_group", "red"),
	}
}

func suitPredicate(sp suitParams) predicate {
	return func(card string) string {
		is := func(suit string) string {
			return card + ":is_suit(" + types.LuaString(suit) + ")"
		}
		if sp.SuitType != "group" {
			return is(sp.Suit)
		}
		if sp.Group == "black" {
			return "(" + is("Spades") + " or " + is("Clubs") + ")"
		}
		return "(" + is("Hearts") + " or " + is("Diamonds") + ")"
	}
}

func enhancementPredicate(enhancement string) predicate {
	return func(card string) string {
		switch enhancement {
		case "any":
			return "next(SMODS.get_enhancements(" + card + "))"
		case "none":
			return "not next(SMODS.get_enhancements(" + card + "))"
		default:
			return "SMODS.get_enhancements(" + card + ")[" + types.LuaString(enhancement) + "] == true"
		}
	}
}

func sealPredicate(seal string) predicate {
	return func(card string) string {
		switch seal {
		case "any":
			return card + ".seal ~= nil"
		case "none":
			return card + ".seal == nil"
		default:
			return card + ".seal == " + types.LuaString(seal)
		}
	}
}

func editionPredicate(edition string) predicate {
	return func(card string) string {
		switch edition {
		case "any":
			return card + ".edition ~= nil"
		case "none":
			return card + ".edition == nil"
		default:
			return "(" + card + ".edition and " + card + ".edition.key == " + types.LuaString(edition) + ")"
		}
	}
}
