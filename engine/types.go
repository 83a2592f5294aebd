package engine

import (
	"fmt"
	"strings"
)

// CardType is the printed type line of a card.
type CardType uint8

const (
	TypeTreasure       CardType = iota // 0
	TypeVictory                        // 1
	TypeAction                         // 2
	TypeActionAttack                   // 3
	TypeActionReaction                 // 4
	TypeCurse                          // 5
)

var cardTypeNames = [...]string{
	TypeTreasure:       "treasure",
	TypeVictory:        "victory",
	TypeAction:         "action",
	TypeActionAttack:   "action-attack",
	TypeActionReaction: "action-reaction",
	TypeCurse:          "curse",
}

func (t CardType) String() string {
	if int(t) < len(cardTypeNames) {
		return cardTypeNames[t]
	}
	return fmt.Sprintf("CardType(%d)", t)
}

// IsAction reports whether cards of this type can be played in the action phase.
func (t CardType) IsAction() bool {
	return t == TypeAction || t == TypeActionAttack || t == TypeActionReaction
}

// Phase is the step of the current player's turn.
type Phase uint8

const (
	PhaseAction  Phase = iota // 0
	PhaseBuy                  // 1
	PhaseCleanup              // 2
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "action"
	case PhaseBuy:
		return "buy"
	case PhaseCleanup:
		return "cleanup"
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// Special names a card effect that is not just additive numbers.
type Special uint8

const (
	SpecialNone                           Special = iota // 0
	SpecialDiscardDraw                                   // Cellar
	SpecialTrashUpTo4                                    // Chapel
	SpecialTrashCopperGainCoins                          // Moneylender
	SpecialTrashAndGain                                  // Remodel
	SpecialTrashTreasureGainTreasure                     // Mine
	SpecialGainCardUpTo4                                 // Workshop
	SpecialTrashSelfGainCard                             // Feast
	SpecialAttackDiscardTo3                              // Militia
	SpecialAttackGainCurse                               // Witch
	SpecialGainSilverAttackTopdeckVictory                // Bureaucrat
	SpecialAttackRevealTopCard                           // Spy
	SpecialAttackReveal2TrashTreasure                    // Thief
	SpecialReactionBlockAttack                           // Moat
	SpecialPlayActionTwice                               // Throne Room
	SpecialRevealUntil2Treasures                         // Adventurer
	SpecialMayPutDeckIntoDiscard                         // Chancellor
	SpecialDrawTo7SetAsideActions                        // Library
	SpecialOthersDraw1                                   // Council Room
	numSpecials
)

var specialNames = [...]string{
	SpecialNone:                           "",
	SpecialDiscardDraw:                    "discard_draw",
	SpecialTrashUpTo4:                     "trash_up_to_4",
	SpecialTrashCopperGainCoins:           "trash_copper_gain_coins",
	SpecialTrashAndGain:                   "trash_and_gain",
	SpecialTrashTreasureGainTreasure:      "trash_treasure_gain_treasure",
	SpecialGainCardUpTo4:                  "gain_card_up_to_4",
	SpecialTrashSelfGainCard:              "trash_self_gain_card",
	SpecialAttackDiscardTo3:               "attack_discard_to_3",
	SpecialAttackGainCurse:                "attack_gain_curse",
	SpecialGainSilverAttackTopdeckVictory: "gain_silver_attack_topdeck_victory",
	SpecialAttackRevealTopCard:            "attack_reveal_top_card",
	SpecialAttackReveal2TrashTreasure:     "attack_reveal_2_trash_treasure",
	SpecialReactionBlockAttack:            "reaction_block_attack",
	SpecialPlayActionTwice:                "play_action_twice",
	SpecialRevealUntil2Treasures:          "reveal_until_2_treasures",
	SpecialMayPutDeckIntoDiscard:          "may_put_deck_into_discard",
	SpecialDrawTo7SetAsideActions:         "draw_to_7_set_aside_actions",
	SpecialOthersDraw1:                    "others_draw_1",
}

// Every Special must have a name; this fails to compile otherwise.
var _ = [1]struct{}{}[len(specialNames)-int(numSpecials)]

func (s Special) String() string {
	if s < numSpecials {
		return specialNames[s]
	}
	return fmt.Sprintf("Special(%d)", s)
}

// parseSpecial maps a card-table tag to its Special.
func parseSpecial(tag string) (Special, bool) {
	for i, name := range specialNames {
		if name == tag {
			return Special(i), true
		}
	}
	return SpecialNone, false
}

// MoveType is the tag of a Move.
type MoveType uint8

const (
	MovePlayAction            MoveType = iota // 0
	MovePlayTreasure                          // 1
	MovePlayAllTreasures                      // 2
	MoveBuy                                   // 3
	MoveEndPhase                              // 4
	MoveDiscardForCellar                      // 5
	MoveTrashCards                            // 6
	MoveGainCard                              // 7
	MoveSpyDecision                           // 8
	MoveSelectTreasureToTrash                 // 9
	MoveGainTrashedCard                       // 10
	MoveSelectActionForThrone                 // 11
	MoveChancellorDecision                    // 12
	MoveLibrarySetAside                       // 13
	MoveDiscardToHandSize                     // 14
	MoveRevealAndTopdeck                      // 15
	MoveRevealReaction                        // 16
	numMoveTypes
)

var moveTypeNames = [...]string{
	MovePlayAction:            "play_action",
	MovePlayTreasure:          "play_treasure",
	MovePlayAllTreasures:      "play_all_treasures",
	MoveBuy:                   "buy",
	MoveEndPhase:              "end_phase",
	MoveDiscardForCellar:      "discard_for_cellar",
	MoveTrashCards:            "trash_cards",
	MoveGainCard:              "gain_card",
	MoveSpyDecision:           "spy_decision",
	MoveSelectTreasureToTrash: "select_treasure_to_trash",
	MoveGainTrashedCard:       "gain_trashed_card",
	MoveSelectActionForThrone: "select_action_for_throne",
	MoveChancellorDecision:    "chancellor_decision",
	MoveLibrarySetAside:       "library_set_aside",
	MoveDiscardToHandSize:     "discard_to_hand_size",
	MoveRevealAndTopdeck:      "reveal_and_topdeck",
	MoveRevealReaction:        "reveal_reaction",
}

var _ = [1]struct{}{}[len(moveTypeNames)-int(numMoveTypes)]

func (t MoveType) String() string {
	if t < numMoveTypes {
		return moveTypeNames[t]
	}
	return fmt.Sprintf("MoveType(%d)", t)
}

// ParseMoveType returns the MoveType with the given wire name.
func ParseMoveType(name string) (MoveType, bool) {
	for i, n := range moveTypeNames {
		if n == name {
			return MoveType(i), true
		}
	}
	return 0, false
}

// isGeneral reports whether the move type belongs to ordinary turn flow rather
// than to resolving a pending effect.
func (t MoveType) isGeneral() bool {
	switch t {
	case MovePlayAction, MovePlayTreasure, MovePlayAllTreasures, MoveBuy, MoveEndPhase:
		return true
	}
	return false
}

// Destination is where a gained card goes.
type Destination uint8

const (
	DestDiscard Destination = iota // 0, the default
	DestHand                       // 1
	DestTopdeck                    // 2
)

func (d Destination) String() string {
	switch d {
	case DestDiscard:
		return "discard"
	case DestHand:
		return "hand"
	case DestTopdeck:
		return "topdeck"
	}
	return fmt.Sprintf("Destination(%d)", d)
}

// Move is a closed tagged union: Type selects which of the other fields are read.
//
//   - Card: play_action, play_treasure, buy, gain_card, select_treasure_to_trash,
//     gain_trashed_card, select_action_for_throne, library_set_aside,
//     reveal_and_topdeck, reveal_reaction, spy_decision. An empty Card on a
//     selection move means "skip", which is only legal when nothing can be selected
//     (or, for gain_trashed_card and reveal_reaction, to decline).
//   - Cards: discard_for_cellar, trash_cards, discard_to_hand_size.
//   - PlayerIndex: spy_decision, select_treasure_to_trash.
//   - Choice: spy_decision (true = discard), chancellor_decision (true = put deck
//     into discard), library_set_aside (true = set aside).
//   - Destination: gain_card.
type Move struct {
	Type        MoveType
	Card        string
	Cards       []string
	PlayerIndex int
	Choice      bool
	Destination Destination
}

func (m Move) String() string {
	var b strings.Builder
	b.WriteString(m.Type.String())
	switch m.Type {
	case MoveDiscardForCellar, MoveTrashCards, MoveDiscardToHandSize:
		fmt.Fprintf(&b, " [%s]", strings.Join(m.Cards, ", "))
	case MoveSpyDecision:
		fmt.Fprintf(&b, " player=%d %s discard=%t", m.PlayerIndex, m.Card, m.Choice)
	case MoveSelectTreasureToTrash:
		if m.Card != "" {
			fmt.Fprintf(&b, " player=%d %s", m.PlayerIndex, m.Card)
		}
	case MoveChancellorDecision:
		fmt.Fprintf(&b, " %t", m.Choice)
	case MoveLibrarySetAside:
		fmt.Fprintf(&b, " %s set_aside=%t", m.Card, m.Choice)
	case MoveGainCard:
		if m.Card != "" {
			fmt.Fprintf(&b, " %s to %s", m.Card, m.Destination)
		}
	default:
		if m.Card != "" {
			b.WriteString(" " + m.Card)
		}
	}
	return b.String()
}

// Move constructors for the common shapes.

func PlayAction(card string) Move   { return Move{Type: MovePlayAction, Card: card} }
func PlayTreasure(card string) Move { return Move{Type: MovePlayTreasure, Card: card} }
func PlayAllTreasures() Move        { return Move{Type: MovePlayAllTreasures} }
func Buy(card string) Move          { return Move{Type: MoveBuy, Card: card} }
func EndPhase() Move                { return Move{Type: MoveEndPhase} }

func DiscardForCellar(cards ...string) Move {
	return Move{Type: MoveDiscardForCellar, Cards: cards}
}

func TrashCards(cards ...string) Move { return Move{Type: MoveTrashCards, Cards: cards} }

func GainCard(card string, dest Destination) Move {
	return Move{Type: MoveGainCard, Card: card, Destination: dest}
}

func DiscardToHandSize(cards ...string) Move {
	return Move{Type: MoveDiscardToHandSize, Cards: cards}
}
