package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func TestMatch_Apply(t *testing.T) {
	t.Run("Successful move", func(t *testing.T) {
		// Given: a new match
		match := NewMatch("123", WithBotMode, tictactoe.X)

		// When: X plays the center
		err := match.Apply(tictactoe.Action{Row: 1, Col: 1})
		require.NoError(t, err)

		// Then: the board, history and turn reflect the move
		assert.Equal(t, tictactoe.X, match.Board[1][1])
		assert.Equal(t, []tictactoe.Action{{Row: 1, Col: 1}}, match.Moves)
		assert.Equal(t, tictactoe.O, match.Turn())
		assert.Equal(t, StatusOngoing, match.Status)
		assert.False(t, match.IsHumanTurn())
	})

	t.Run("Occupied cell leaves the match unchanged", func(t *testing.T) {
		// Given: a match with X in the corner
		match := NewMatch("123", WithBotMode, tictactoe.X)
		require.NoError(t, match.Apply(tictactoe.Action{Row: 0, Col: 0}))
		snapshot := *match

		// When: O plays the same corner
		err := match.Apply(tictactoe.Action{Row: 0, Col: 0})

		// Then: ErrInvalidMove is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, snapshot.Board, match.Board)
		assert.Len(t, match.Moves, 1)
	})

	t.Run("Winning move finishes the match", func(t *testing.T) {
		// Given: X is one move from the top row
		match := NewMatch("123", SelfPlayMode, tictactoe.Empty)
		for _, action := range []tictactoe.Action{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}} {
			require.NoError(t, match.Apply(action))
		}

		// When: X completes the row
		require.NoError(t, match.Apply(tictactoe.Action{Row: 0, Col: 2}))

		// Then: X is the winner and further moves are rejected
		assert.Equal(t, StatusFinished, match.Status)
		assert.Equal(t, "X", match.Winner)
		assert.Equal(t, tictactoe.Empty, match.Turn())
		assert.ErrorIs(t, match.Apply(tictactoe.Action{Row: 2, Col: 2}), apperror.ErrGameFinished)
	})

	t.Run("Full board without a line is a tie", func(t *testing.T) {
		match := NewMatch("123", SelfPlayMode, tictactoe.Empty)
		moves := []tictactoe.Action{
			{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
			{Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2},
			{Row: 2, Col: 1}, {Row: 2, Col: 0}, {Row: 2, Col: 2},
		}
		for _, action := range moves {
			require.NoError(t, match.Apply(action))
		}

		assert.Equal(t, StatusFinished, match.Status)
		assert.Equal(t, PlayerTie, match.Winner)
	})
}

func TestMatch_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when match is ongoing", func(t *testing.T) {
		match := &Match{Status: StatusOngoing}

		assert.NoError(t, match.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when match is finished", func(t *testing.T) {
		match := &Match{Status: StatusFinished}

		assert.ErrorIs(t, match.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown status", func(t *testing.T) {
		match := &Match{Status: "unknown"}

		err := match.ConfirmOngoingState()

		require.ErrorIs(t, err, ErrUnknownMatchStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}
