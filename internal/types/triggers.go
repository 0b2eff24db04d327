package types

// TriggerID names the game event a rule reacts to.
type TriggerID string

const (
	TriggerHandPlayed     TriggerID = "hand_played"
	TriggerCardScored     TriggerID = "card_scored"
	TriggerCardRepetition TriggerID = "card_repetition"
	TriggerCardHeldInHand TriggerID = "card_held_in_hand"
	TriggerCardDiscarded  TriggerID = "card_discarded"
	TriggerHandDiscarded  TriggerID = "hand_discarded"
	TriggerCardDestroyed  TriggerID = "card_destroyed"
	TriggerBlindSelected  TriggerID = "blind_selected"
	TriggerBlindSkipped   TriggerID = "blind_skipped"
	TriggerBossDefeated   TriggerID = "boss_defeated"
	TriggerRoundEnd       TriggerID = "round_end"
	TriggerShopEntered    TriggerID = "shop_entered"
	TriggerShopExited     TriggerID = "shop_exited"
	TriggerCardSold       TriggerID = "card_sold"
	TriggerCardBought     TriggerID = "card_bought"
	TriggerConsumableUsed TriggerID = "consumable_used"
	TriggerPassive        TriggerID = "passive"
)

// TriggerScope tells generators which cards a trigger exposes.
type TriggerScope int

const (
	// ScopeNone triggers carry no card subject.
	ScopeNone TriggerScope = iota
	// ScopeCard triggers fire once per card with context.other_card set.
	ScopeCard
	// ScopeHand triggers fire once per hand with a card list in context.
	ScopeHand
)

type triggerInfo struct {
	context string
	scope   TriggerScope
	cards   string
}

var triggers = map[TriggerID]triggerInfo{
	TriggerHandPlayed:     {context: "context.joker_main", scope: ScopeHand, cards: "context.scoring_hand"},
	TriggerCardScored:     {context: "context.individual and context.cardarea == G.play", scope: ScopeCard},
	TriggerCardRepetition: {context: "context.repetition and context.cardarea == G.play", scope: ScopeCard},
	TriggerCardHeldInHand: {context: "context.individual and context.cardarea == G.hand and not context.end_of_round", scope: ScopeCard},
	TriggerCardDiscarded:  {context: "context.discard", scope: ScopeCard},
	TriggerHandDiscarded:  {context: "context.pre_discard", scope: ScopeHand, cards: "context.full_hand"},
	TriggerCardDestroyed:  {context: "context.remove_playing_cards", scope: ScopeHand, cards: "context.removed"},
	TriggerBlindSelected:  {context: "context.setting_blind"},
	TriggerBlindSkipped:   {context: "context.skip_blind"},
	TriggerBossDefeated:   {context: "context.end_of_round and context.main_eval and G.GAME.blind.boss"},
	TriggerRoundEnd:       {context: "context.end_of_round and context.game_over == false and context.main_eval"},
	TriggerShopEntered:    {context: "context.starting_shop"},
	TriggerShopExited:     {context: "context.ending_shop"},
	TriggerCardSold:       {context: "context.selling_card"},
	TriggerCardBought:     {context: "context.buying_card"},
	TriggerConsumableUsed: {context: "context.using_consumeable"},
	TriggerPassive:        {},
}

// Known reports whether the trigger is in the catalogue.
func (t TriggerID) Known() bool {
	_, ok := triggers[t]
	return ok
}

// Context returns the calculate-context guard for the trigger.
// Unknown and passive triggers return "".
func (t TriggerID) Context() string {
	return triggers[t].context
}

// Scope returns which cards the trigger exposes.
func (t TriggerID) Scope() TriggerScope {
	return triggers[t].scope
}

// Card returns the expression for the per-card subject of a card-level trigger.
func (t TriggerID) Card() string {
	return "context.other_card"
}

// Cards returns the card list expression of a hand-level trigger.
// Triggers without a card list fall back to the scoring hand.
func (t TriggerID) Cards() string {
	if c := triggers[t].cards; c != "" {
		return c
	}
	return "context.scoring_hand"
}

// Triggers returns the catalogue in a stable order.
func Triggers() []TriggerID {
	return []TriggerID{
		TriggerHandPlayed, TriggerCardScored, TriggerCardRepetition, TriggerCardHeldInHand,
		TriggerCardDiscarded, TriggerHandDiscarded, TriggerCardDestroyed, TriggerBlindSelected,
		TriggerBlindSkipped, TriggerBossDefeated, TriggerRoundEnd, TriggerShopEntered,
		TriggerShopExited, TriggerCardSold, TriggerCardBought, TriggerConsumableUsed,
		TriggerPassive,
	}
}
