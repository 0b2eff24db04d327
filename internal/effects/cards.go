package effects

import (
	"strings"

	"github.com/scarydoors/jokerforge/internal/types"
)

func (g *generator) destroySelf(p types.Params) Result {
	return Result{
		Setup: []string{
			event(
				"play_sound('tarot1')",
				"card.T.r = -0.2",
				"card:juice_up(0.3, 0.4)",
				"card.states.drag.is = true",
				"card.children.center.pinch.x = true",
				"card:start_dissolve()",
			),
		},
		Colour:  "G.C.RED",
		Message: types.LuaString(p.String("message", "Destroyed!")),
	}
}

// destroyCard marks the card under evaluation for removal.
func destroyCard() Result {
	return Result{
		Statement: "remove = true",
		Colour:    "G.C.RED",
		Message:   `"Destroyed!"`,
	}
}

// copyCard copies the card under evaluation into the hand or deck.
func (g *generator) copyCard(p types.Params) Result {
	copied := g.local("copied_card")
	area := "G.deck"
	if p.String("destination", "deck") == "hand" {
		area = "G.hand"
	}

	lines := []string{
		"if context.other_card then",
		"    G.playing_card = (G.playing_card and G.playing_card + 1) or 1",
		"    local " + copied + " = copy_card(context.other_card, nil, nil, G.playing_card)",
		"    " + copied + ":add_to_deck()",
		"    G.deck.config.card_limit = G.deck.config.card_limit + 1",
		"    table.insert(G.playing_cards, " + copied + ")",
		"    " + area + ":emplace(" + copied + ")",
		"    " + copied + ".states.visible = nil",
		indentLines(event(copied + ":start_materialize()")),
		"end",
	}
	return Result{
		Setup:   []string{strings.Join(lines, "\n")},
		Colour:  "G.C.GREEN",
		Message: `"Copied!"`,
	}
}

// createJoker adds a joker when there is a free slot.
func (g *generator) createJoker(p types.Params) Result {
	created := g.local("created_joker")

	args := "set = 'Joker'"
	if key := p.String("joker_key", "random"); key != "random" {
		if !strings.HasPrefix(key, "j_") {
			key = "j_" + key
		}
		args += ", key = " + types.LuaString(key)
	} else if rarity := p.String("rarity", "random"); rarity != "random" {
		args += ", rarity = " + types.LuaString(rarity)
	}

	lines := []string{
		"local " + created + " = false",
		"if #G.jokers.cards + G.GAME.joker_buffer < G.jokers.config.card_limit then",
		"    " + created + " = true",
		"    G.GAME.joker_buffer = G.GAME.joker_buffer + 1",
		indentLines(event(
			"SMODS.add_card({ "+args+" })",
			"G.GAME.joker_buffer = 0",
		)),
		"end",
	}
	return Result{
		Setup:        []string{strings.Join(lines, "\n")},
		Colour:       "G.C.BLUE",
		Message:      created + " and localize('k_plus_joker') or nil",
		CustomCanUse: "#G.jokers.cards < G.jokers.config.card_limit",
	}
}

// createConsumable adds a consumable of the given set when there is room.
func (g *generator) createConsumable(p types.Params) Result {
	created := g.local("created_consumable")
	set := p.String("set", "Tarot")

	args := "set = " + types.LuaString(set)
	if key := p.String("consumable_key", "random"); key != "random" {
		args += ", key = " + types.LuaString(key)
	}

	lines := []string{
		"local " + created + " = false",
		"if #G.consumeables.cards + G.GAME.consumeable_buffer < G.consumeables.config.card_limit then",
		"    " + created + " = true",
		"    G.GAME.consumeable_buffer = G.GAME.consumeable_buffer + 1",
		indentLines(event(
			"SMODS.add_card({ "+args+" })",
			"G.GAME.consumeable_buffer = 0",
		)),
		"end",
	}

	colour := "G.C.SECONDARY_SET.Tarot"
	switch set {
	case "Planet":
		colour = "G.C.SECONDARY_SET.Planet"
	case "Spectral":
		colour = "G.C.SECONDARY_SET.Spectral"
	}
	return Result{
		Setup:        []string{strings.Join(lines, "\n")},
		Colour:       colour,
		Message:      created + " and localize('k_plus_" + strings.ToLower(set) + "') or nil",
		CustomCanUse: "#G.consumeables.cards < G.consumeables.config.card_limit",
	}
}

// addCardToDeck creates a playing card with the chosen rank, suit and
// enhancement and places it in the deck.
func (g *generator) addCardToDeck(p types.Params) Result {
	fields := []string{"set = 'Base'", "area = G.deck"}
	if rank := p.String("rank", "random"); rank != "random" {
		fields = append(fields, "rank = "+types.LuaString(rank))
	}
	if suit := p.String("suit", "random"); suit != "random" {
		fields = append(fields, "suit = "+types.LuaString(suit))
	}
	if enh := p.String("enhancement", "none"); enh != "none" {
		fields = append(fields, "enhancement = "+types.LuaString(enh))
	}

	return Result{
		Setup: []string{
			event(
				"local new_card = SMODS.add_card({ "+strings.Join(fields, ", ")+" })",
				"G.deck.config.card_limit = G.deck.config.card_limit + 1",
				"playing_card_joker_effects({ new_card })",
			),
		},
		Colour:  "G.C.GREEN",
		Message: `"Added Card!"`,
	}
}
