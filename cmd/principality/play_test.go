package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/principality/engine"
)

func promptState() engine.GameState {
	return engine.GameState{
		Players:    []engine.PlayerState{{Hand: []string{"Copper", "Estate"}, Actions: 1, Buys: 1}},
		TurnNumber: 3,
		Phase:      engine.PhaseBuy,
	}
}

func TestPromptPicksNumberedMove(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader("x\n9\n2\n"))
	moves := []engine.Move{engine.PlayAllTreasures(), engine.EndPhase()}

	m, quit := prompt(&out, in, promptState(), moves)
	require.False(t, quit)
	assert.Equal(t, engine.MoveEndPhase, m.Type)
	assert.Contains(t, out.String(), "Turn 3, buy phase")
	assert.Contains(t, out.String(), "Hand: Copper, Estate")
	assert.Equal(t, 2, strings.Count(out.String(), "Enter 1-2 or q"))
}

func TestPromptQuit(t *testing.T) {
	var out bytes.Buffer
	_, quit := prompt(&out, bufio.NewScanner(strings.NewReader("q\n")), promptState(), []engine.Move{engine.EndPhase()})
	assert.True(t, quit)

	_, quit = prompt(&out, bufio.NewScanner(strings.NewReader("")), promptState(), []engine.Move{engine.EndPhase()})
	assert.True(t, quit, "end of input quits")
}

func TestDescribe(t *testing.T) {
	c, ok := engine.LookupCard("Gardens")
	require.True(t, ok)
	assert.Equal(t, c.Description, describe(c))

	c.Description = ""
	c.Effect = engine.Effect{Cards: 2, Coins: 1}
	c.VictoryPoints = 0
	assert.Equal(t, "+2 Cards, +1 Coins", describe(c))
}
