// internal/gamevar/registry.go
package gamevar

/*
 * Live-state variable catalogue.
 *
 * Each Variable maps an editor id to the Lua expression that reads the value
 * from the running game. Labels are user-facing and also the source of the
 * configuration-variable name (see Slug), so two ids sharing a label share
 * one declaration.
 *
 * The catalogue is immutable after construction; Registry methods are safe
 * for concurrent use.
 */

// Variable is one live-state value the editor can reference.
type Variable struct {
	ID       string
	Label    string
	Code     string
	Category string
}

// Registry holds a catalogue of variables keyed by id.
type Registry struct {
	byID  map[string]Variable
	order []string
}

// NewRegistry builds a registry from vars. Later duplicates of an id are ignored.
func NewRegistry(vars ...Variable) *Registry {
	r := &Registry{byID: make(map[string]Variable, len(vars))}
	for _, v := range vars {
		if _, exists := r.byID[v.ID]; exists {
			continue
		}
		r.byID[v.ID] = v
		r.order = append(r.order, v.ID)
	}
	return r
}

// Lookup returns the variable registered under id.
func (r *Registry) Lookup(id string) (Variable, bool) {
	if r == nil {
		return Variable{}, false
	}
	v, ok := r.byID[id]
	return v, ok
}

// Variables returns the catalogue in registration order.
func (r *Registry) Variables() []Variable {
	if r == nil {
		return nil
	}
	out := make([]Variable, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

var defaultRegistry = NewRegistry(
	Variable{ID: "current_money", Label: "Current Money", Code: "G.GAME.dollars", Category: "economy"},
	Variable{ID: "interest_cap", Label: "Interest Cap", Code: "G.GAME.interest_cap", Category: "economy"},
	Variable{ID: "reroll_cost", Label: "Reroll Cost", Code: "G.GAME.current_round.reroll_cost", Category: "economy"},
	Variable{ID: "hands_remaining", Label: "Hands Remaining", Code: "G.GAME.current_round.hands_left", Category: "round"},
	Variable{ID: "discards_remaining", Label: "Discards Remaining", Code: "G.GAME.current_round.discards_left", Category: "round"},
	Variable{ID: "hands_played", Label: "Hands Played", Code: "G.GAME.current_round.hands_played", Category: "round"},
	Variable{ID: "discards_used", Label: "Discards Used", Code: "G.GAME.current_round.discards_used", Category: "round"},
	Variable{ID: "current_ante", Label: "Current Ante", Code: "G.GAME.round_resets.ante", Category: "progress"},
	Variable{ID: "current_round", Label: "Current Round", Code: "G.GAME.round", Category: "progress"},
	Variable{ID: "skips", Label: "Blinds Skipped", Code: "G.GAME.skips", Category: "progress"},
	Variable{ID: "blind_requirement", Label: "Blind Requirement", Code: "G.GAME.blind.chips", Category: "progress"},
	Variable{ID: "current_score", Label: "Current Score", Code: "G.GAME.chips", Category: "progress"},
	Variable{ID: "joker_count", Label: "Joker Count", Code: "#G.jokers.cards", Category: "collection"},
	Variable{ID: "joker_slots", Label: "Joker Slots", Code: "G.jokers.config.card_limit", Category: "collection"},
	Variable{ID: "consumable_count", Label: "Consumable Count", Code: "#G.consumeables.cards", Category: "collection"},
	Variable{ID: "consumable_slots", Label: "Consumable Slots", Code: "G.consumeables.config.card_limit", Category: "collection"},
	Variable{ID: "hand_size", Label: "Hand Size", Code: "G.hand.config.card_limit", Category: "cards"},
	Variable{ID: "cards_in_hand", Label: "Cards In Hand", Code: "#G.hand.cards", Category: "cards"},
	Variable{ID: "deck_size", Label: "Deck Size", Code: "#G.playing_cards", Category: "cards"},
	Variable{ID: "cards_in_deck", Label: "Cards In Deck", Code: "#G.deck.cards", Category: "cards"},
	Variable{ID: "scoring_cards", Label: "Scoring Cards", Code: "#(context.scoring_hand or {})", Category: "cards"},
	Variable{ID: "tarots_used", Label: "Tarots Used", Code: "(G.GAME.consumeable_usage_total and G.GAME.consumeable_usage_total.tarot or 0)", Category: "usage"},
	Variable{ID: "planets_used", Label: "Planets Used", Code: "(G.GAME.consumeable_usage_total and G.GAME.consumeable_usage_total.planet or 0)", Category: "usage"},
)

// Default returns the built-in catalogue.
func Default() *Registry {
	return defaultRegistry
}
