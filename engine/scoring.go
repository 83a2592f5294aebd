package engine

// Score returns the victory points of a seat's cards. Gardens is worth one
// point per full 10 cards in the collection.
func Score(cards []string) int {
	score := 0
	for _, name := range cards {
		c, ok := cardsByName[name]
		if !ok {
			continue
		}
		if c.DynamicVictory {
			score += len(cards) / 10
			continue
		}
		score += c.VictoryPoints
	}
	return score
}

// Victory is the result of CheckGameOver. Scores, Winner and Tied are only set
// once IsGameOver is true.
type Victory struct {
	IsGameOver bool
	Scores     []int
	Winner     int
	// Tied lists every seat sharing the top score, in seat order. It has one
	// entry when there is no tie.
	Tied []int
}

// CheckGameOver ends the game when the Province pile is empty or at least three
// piles are. The winner among seats tied on score is picked by Rules.TieBreak.
func CheckGameOver(s GameState) Victory {
	if !s.gameOver() {
		return Victory{IsGameOver: false, Winner: -1}
	}
	return Standings(s)
}

// Standings scores the position as it stands and picks a winner the same way
// CheckGameOver does, whether or not an end condition has been met.
// IsGameOver reports the end condition.
func Standings(s GameState) Victory {
	scores := s.computeScores()
	best := scores[0]
	for _, sc := range scores[1:] {
		best = max(best, sc)
	}
	var tied []int
	for seat, sc := range scores {
		if sc == best {
			tied = append(tied, seat)
		}
	}
	return Victory{
		IsGameOver: s.gameOver(),
		Scores:     scores,
		Winner:     s.breakTie(tied),
		Tied:       tied,
	}
}

func (s *GameState) gameOver() bool {
	if s.Supply.Has("Province") && s.Supply.Count("Province") <= 0 {
		return true
	}
	return s.Supply.EmptyPiles() >= 3
}

// computeScores returns the score of every seat, counting all four zones.
func (s *GameState) computeScores() []int {
	scores := make([]int, len(s.Players))
	for i, p := range s.Players {
		scores[i] = Score(p.AllCards())
	}
	return scores
}

// TurnsTaken returns how many turns seat has started. A turn starts with its
// first move, so a seat that has just been passed the turn has not taken it.
func (s *GameState) TurnsTaken(seat int) int {
	return s.Players[seat].Turns
}

// breakTie picks one winner from seats tied on score. tied is in seat order.
func (s *GameState) breakTie(tied []int) int {
	winner := tied[0]
	if s.Rules.TieBreak == TieBreakLowestSeat {
		return winner
	}
	for _, seat := range tied[1:] {
		if s.TurnsTaken(seat) < s.TurnsTaken(winner) {
			winner = seat
		}
	}
	return winner
}
