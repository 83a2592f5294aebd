package engine

// Draw moves up to n cards from the top of draw into hand. When draw runs out
// and more cards are wanted, discard is shuffled with r and becomes the new draw
// pile. If both are empty the draw stops short; that is not an error.
//
// The input slices are not modified.
func Draw(r *Rand, draw, discard, hand []string, n int) (newDraw, newDiscard, newHand []string) {
	newDraw = append([]string(nil), draw...)
	newDiscard = append([]string(nil), discard...)
	newHand = append([]string(nil), hand...)
	for i := 0; i < n; i++ {
		if len(newDraw) == 0 {
			if len(newDiscard) == 0 {
				break
			}
			newDraw = r.Shuffle(newDiscard)
			newDiscard = nil
		}
		newHand = append(newHand, newDraw[0])
		newDraw = newDraw[1:]
	}
	return newDraw, newDiscard, newHand
}

// draw draws n cards for seat using the state's generator.
func (s *GameState) draw(seat, n int) int {
	p := &s.Players[seat]
	before := len(p.Hand)
	p.DrawPile, p.DiscardPile, p.Hand = Draw(&s.RNG, p.DrawPile, p.DiscardPile, p.Hand, n)
	return len(p.Hand) - before
}

// reveal takes the top card of seat's draw pile, reshuffling the discard pile
// first if needed. ok is false when both piles are empty.
func (s *GameState) reveal(seat int) (card string, ok bool) {
	p := &s.Players[seat]
	if len(p.DrawPile) == 0 {
		if len(p.DiscardPile) == 0 {
			return "", false
		}
		p.DrawPile = s.RNG.Shuffle(p.DiscardPile)
		p.DiscardPile = nil
	}
	card = p.DrawPile[0]
	p.DrawPile = append([]string(nil), p.DrawPile[1:]...)
	return card, true
}
