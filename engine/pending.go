package engine

import "fmt"

// PendingKind names the decision a Pending effect is waiting for.
type PendingKind uint8

const (
	PendingCellarDiscard      PendingKind = iota // Cellar
	PendingChapelTrash                           // Chapel
	PendingMoneylenderTrash                      // Moneylender
	PendingRemodelTrash                          // Remodel
	PendingMineTrash                             // Mine
	PendingGainChoice                            // Remodel/Mine/Workshop/Feast gain step
	PendingHandSizeDiscard                       // Militia
	PendingTopdeckReveal                         // Bureaucrat
	PendingSpyDecision                           // Spy
	PendingThiefSelect                           // Thief
	PendingThiefGain                             // Thief
	PendingThroneSelect                          // Throne Room
	PendingChancellorDecision                    // Chancellor
	PendingLibrarySetAside                       // Library
	PendingReactionReveal                        // Moat, when reactions are asked
	numPendingKinds
)

var pendingKindNames = [...]string{
	PendingCellarDiscard:      "discard_for_cellar",
	PendingChapelTrash:        "trash_cards",
	PendingMoneylenderTrash:   "trash_copper",
	PendingRemodelTrash:       "trash_for_remodel",
	PendingMineTrash:          "select_treasure_to_trash",
	PendingGainChoice:         "gain_card",
	PendingHandSizeDiscard:    "discard_to_hand_size",
	PendingTopdeckReveal:      "reveal_and_topdeck",
	PendingSpyDecision:        "spy_decision",
	PendingThiefSelect:        "thief_select_treasure",
	PendingThiefGain:          "gain_trashed_card",
	PendingThroneSelect:       "select_action_for_throne",
	PendingChancellorDecision: "chancellor_decision",
	PendingLibrarySetAside:    "library_set_aside",
	PendingReactionReveal:     "reveal_reaction",
}

var _ = [1]struct{}{}[len(pendingKindNames)-int(numPendingKinds)]

func (k PendingKind) String() string {
	if k < numPendingKinds {
		return pendingKindNames[k]
	}
	return fmt.Sprintf("PendingKind(%d)", k)
}

// Replay is the Throne Room context of a play: Card still has Remaining plays
// owed once the current one fully resolves. The zero value means no replay.
type Replay struct {
	Card      string
	Remaining int
}

// Pending is the single continuation slot of a GameState. Each variant carries
// exactly the context its follow-up move needs.
type Pending interface {
	Kind() PendingKind
	// Source is the card whose effect installed this pending effect.
	Source() string
	// Expects is the only move type that resolves this effect.
	Expects() MoveType
	// Decider is the seat that owes the follow-up move.
	Decider(s *GameState) int
	Replay() Replay

	withReplay(r Replay) Pending
	clone() Pending
	resolve(s *GameState, m Move) error
	options(s *GameState) []Move
}

// attackStep is implemented by pending effects that pause an attack on one
// defender. Finishing them continues the attack with the next seat.
type attackStep interface {
	attackTarget() int
}

// holder is implemented by pending effects that keep cards outside every zone
// while they wait.
type holder interface {
	held() []string
}

type pendingBase struct {
	Card   string
	replay Replay
}

func (b pendingBase) Source() string           { return b.Card }
func (b pendingBase) Replay() Replay           { return b.replay }
func (b pendingBase) Decider(s *GameState) int { return s.CurrentPlayer }

// targeted is embedded by effects decided by, or aimed at, one seat.
type targeted struct {
	Target int
}

func (t targeted) attackTarget() int { return t.Target }

// ---------------------------------------------------------------------------
// Variants
// ---------------------------------------------------------------------------

// CellarDiscard waits for discard_for_cellar: any subset of the hand.
type CellarDiscard struct{ pendingBase }

// ChapelTrash waits for trash_cards with at most MaxTrash cards.
type ChapelTrash struct {
	pendingBase
	MaxTrash int
}

// MoneylenderTrash waits for trash_cards with one Copper, or none to decline.
type MoneylenderTrash struct{ pendingBase }

// RemodelTrash waits for trash_cards naming exactly one card from hand.
type RemodelTrash struct{ pendingBase }

// MineTrash waits for select_treasure_to_trash naming a treasure in hand.
type MineTrash struct{ pendingBase }

// GainChoice waits for gain_card. MaxCost is fixed when the effect is
// installed and never recomputed.
type GainChoice struct {
	pendingBase
	MaxCost      int
	TreasureOnly bool
	Destination  Destination
}

// HandSizeDiscard waits for Target to discard down to HandSize.
type HandSizeDiscard struct {
	pendingBase
	targeted
	HandSize int
}

func (p HandSizeDiscard) Decider(*GameState) int { return p.Target }

// TopdeckReveal waits for Target to put a Victory card from hand on their deck.
type TopdeckReveal struct {
	pendingBase
	targeted
}

func (p TopdeckReveal) Decider(*GameState) int { return p.Target }

// SpyDecision waits for the attacker to keep or discard Target's top card.
type SpyDecision struct {
	pendingBase
	targeted
	Revealed string
}

// ThiefSelect waits for the attacker to pick a treasure among the cards
// revealed from the top of Target's deck. The revealed cards stay on the draw
// pile until the choice is made.
type ThiefSelect struct {
	pendingBase
	targeted
	Revealed []string
}

// ThiefGain waits for the attacker to take the trashed treasure or decline.
type ThiefGain struct {
	pendingBase
	targeted
	Trashed string
}

// ThroneSelect waits for the action card to be played multiple times. Doubled
// marks a Throne Room that was itself played by a Throne Room.
type ThroneSelect struct {
	pendingBase
	Doubled bool
}

// ChancellorDecision waits for the yes/no on moving the deck into the discard.
type ChancellorDecision struct{ pendingBase }

// LibrarySetAside waits for the keep/set-aside call on the Action card just
// drawn. SetAside holds the cards set aside so far.
type LibrarySetAside struct {
	pendingBase
	Drawn    string
	SetAside []string
}

// ReactionReveal waits for Target to reveal a reaction against the attack
// named by Source, or decline.
type ReactionReveal struct {
	pendingBase
	targeted
}

func (p ReactionReveal) Decider(*GameState) int { return p.Target }

func (CellarDiscard) Kind() PendingKind      { return PendingCellarDiscard }
func (ChapelTrash) Kind() PendingKind        { return PendingChapelTrash }
func (MoneylenderTrash) Kind() PendingKind   { return PendingMoneylenderTrash }
func (RemodelTrash) Kind() PendingKind       { return PendingRemodelTrash }
func (MineTrash) Kind() PendingKind          { return PendingMineTrash }
func (GainChoice) Kind() PendingKind         { return PendingGainChoice }
func (HandSizeDiscard) Kind() PendingKind    { return PendingHandSizeDiscard }
func (TopdeckReveal) Kind() PendingKind      { return PendingTopdeckReveal }
func (SpyDecision) Kind() PendingKind        { return PendingSpyDecision }
func (ThiefSelect) Kind() PendingKind        { return PendingThiefSelect }
func (ThiefGain) Kind() PendingKind          { return PendingThiefGain }
func (ThroneSelect) Kind() PendingKind       { return PendingThroneSelect }
func (ChancellorDecision) Kind() PendingKind { return PendingChancellorDecision }
func (LibrarySetAside) Kind() PendingKind    { return PendingLibrarySetAside }
func (ReactionReveal) Kind() PendingKind     { return PendingReactionReveal }

func (CellarDiscard) Expects() MoveType      { return MoveDiscardForCellar }
func (ChapelTrash) Expects() MoveType        { return MoveTrashCards }
func (MoneylenderTrash) Expects() MoveType   { return MoveTrashCards }
func (RemodelTrash) Expects() MoveType       { return MoveTrashCards }
func (MineTrash) Expects() MoveType          { return MoveSelectTreasureToTrash }
func (GainChoice) Expects() MoveType         { return MoveGainCard }
func (HandSizeDiscard) Expects() MoveType    { return MoveDiscardToHandSize }
func (TopdeckReveal) Expects() MoveType      { return MoveRevealAndTopdeck }
func (SpyDecision) Expects() MoveType        { return MoveSpyDecision }
func (ThiefSelect) Expects() MoveType        { return MoveSelectTreasureToTrash }
func (ThiefGain) Expects() MoveType          { return MoveGainTrashedCard }
func (ThroneSelect) Expects() MoveType       { return MoveSelectActionForThrone }
func (ChancellorDecision) Expects() MoveType { return MoveChancellorDecision }
func (LibrarySetAside) Expects() MoveType    { return MoveLibrarySetAside }
func (ReactionReveal) Expects() MoveType     { return MoveRevealReaction }

func (p CellarDiscard) withReplay(r Replay) Pending      { p.replay = r; return p }
func (p ChapelTrash) withReplay(r Replay) Pending        { p.replay = r; return p }
func (p MoneylenderTrash) withReplay(r Replay) Pending   { p.replay = r; return p }
func (p RemodelTrash) withReplay(r Replay) Pending       { p.replay = r; return p }
func (p MineTrash) withReplay(r Replay) Pending          { p.replay = r; return p }
func (p GainChoice) withReplay(r Replay) Pending         { p.replay = r; return p }
func (p HandSizeDiscard) withReplay(r Replay) Pending    { p.replay = r; return p }
func (p TopdeckReveal) withReplay(r Replay) Pending      { p.replay = r; return p }
func (p SpyDecision) withReplay(r Replay) Pending        { p.replay = r; return p }
func (p ThiefSelect) withReplay(r Replay) Pending        { p.replay = r; return p }
func (p ThiefGain) withReplay(r Replay) Pending          { p.replay = r; return p }
func (p ThroneSelect) withReplay(r Replay) Pending       { p.replay = r; return p }
func (p ChancellorDecision) withReplay(r Replay) Pending { p.replay = r; return p }
func (p LibrarySetAside) withReplay(r Replay) Pending    { p.replay = r; return p }
func (p ReactionReveal) withReplay(r Replay) Pending     { p.replay = r; return p }

func (p CellarDiscard) clone() Pending      { return p }
func (p ChapelTrash) clone() Pending        { return p }
func (p MoneylenderTrash) clone() Pending   { return p }
func (p RemodelTrash) clone() Pending       { return p }
func (p MineTrash) clone() Pending          { return p }
func (p GainChoice) clone() Pending         { return p }
func (p HandSizeDiscard) clone() Pending    { return p }
func (p TopdeckReveal) clone() Pending      { return p }
func (p SpyDecision) clone() Pending        { return p }
func (p ThiefGain) clone() Pending          { return p }
func (p ThroneSelect) clone() Pending       { return p }
func (p ChancellorDecision) clone() Pending { return p }
func (p ReactionReveal) clone() Pending     { return p }

func (p ThiefSelect) clone() Pending {
	p.Revealed = append([]string(nil), p.Revealed...)
	return p
}

func (p LibrarySetAside) clone() Pending {
	p.SetAside = append([]string(nil), p.SetAside...)
	return p
}

func (p LibrarySetAside) held() []string { return p.SetAside }

// install sets the pending slot, carrying the replay context of the play that
// produced it.
func (s *GameState) install(p Pending, r Replay) {
	s.Pending = p.withReplay(r)
}

func base(card string) pendingBase { return pendingBase{Card: card} }
