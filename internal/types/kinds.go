package types

// ConditionType selects the generator for a condition.
type ConditionType string

const (
	ConditionHandType            ConditionType = "hand_type"
	ConditionCardRank            ConditionType = "card_rank"
	ConditionCardSuit            ConditionType = "card_suit"
	ConditionCardEnhancement     ConditionType = "card_enhancement"
	ConditionCardSeal            ConditionType = "card_seal"
	ConditionCardEdition         ConditionType = "card_edition"
	ConditionPlayerMoney         ConditionType = "player_money"
	ConditionRemainingHands      ConditionType = "remaining_hands"
	ConditionRemainingDiscards   ConditionType = "remaining_discards"
	ConditionHandsPlayed         ConditionType = "hands_played"
	ConditionJokerCount          ConditionType = "joker_count"
	ConditionHandSize            ConditionType = "hand_size"
	ConditionDeckSize            ConditionType = "deck_size"
	ConditionAnteLevel           ConditionType = "ante_level"
	ConditionRoundNumber         ConditionType = "round_number"
	ConditionCardCount           ConditionType = "card_count"
	ConditionFirstPlayedHand     ConditionType = "first_played_hand"
	ConditionFirstDiscardedHand  ConditionType = "first_discarded_hand"
	ConditionBlindType           ConditionType = "blind_type"
	ConditionBossBlindActive     ConditionType = "boss_blind_active"
	ConditionSpecificJoker       ConditionType = "specific_joker"
	ConditionInternalVariable    ConditionType = "internal_variable"
	ConditionConsumableCount     ConditionType = "consumable_count"
	ConditionPokerHandBeenPlayed ConditionType = "poker_hand_been_played"
	ConditionVoucherRedeemed     ConditionType = "voucher_redeemed"
	ConditionGenericCompare      ConditionType = "generic_compare"
)

// EffectType selects the generator for an effect.
type EffectType string

const (
	EffectAddChips               EffectType = "add_chips"
	EffectAddMult                EffectType = "add_mult"
	EffectApplyXMult             EffectType = "apply_x_mult"
	EffectApplyXChips            EffectType = "apply_x_chips"
	EffectAddDollars             EffectType = "add_dollars"
	EffectSetDollars             EffectType = "set_dollars"
	EffectRetriggerCards         EffectType = "retrigger_cards"
	EffectLevelUpHand            EffectType = "level_up_hand"
	EffectDestroySelf            EffectType = "destroy_self"
	EffectDestroyCard            EffectType = "destroy_card"
	EffectCopyCard               EffectType = "copy_card"
	EffectCreateJoker            EffectType = "create_joker"
	EffectCreateConsumable       EffectType = "create_consumable"
	EffectAddCardToDeck          EffectType = "add_card_to_deck"
	EffectEditHandSize           EffectType = "edit_hand_size"
	EffectEditHands              EffectType = "edit_hands"
	EffectEditDiscards           EffectType = "edit_discards"
	EffectEditJokerSlots         EffectType = "edit_joker_slots"
	EffectEditAnte               EffectType = "edit_ante"
	EffectModifyInternalVariable EffectType = "modify_internal_variable"
	EffectShowMessage            EffectType = "show_message"
	EffectBalance                EffectType = "balance"
	EffectSwapChipsMult          EffectType = "swap_chips_mult"
	EffectSetSellValue           EffectType = "set_sell_value"
	EffectDisableBossBlind       EffectType = "disable_boss_blind"
)
