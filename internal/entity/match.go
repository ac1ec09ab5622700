package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

const (
	WithBotMode  = "bot"
	SelfPlayMode = "self"
)

var ErrUnknownMatchStatus = errors.New("unknown match status")

type Match struct {
	ID        string             `json:"id"`
	Board     tictactoe.Board    `json:"board"`
	Moves     []tictactoe.Action `json:"moves"`
	Mode      string             `json:"mode"`
	HumanMark tictactoe.Mark     `json:"human_mark,omitempty"`
	Status    string             `json:"status"`
	Winner    string             `json:"winner"`
}

func NewMatch(id, mode string, humanMark tictactoe.Mark) *Match {
	return &Match{
		ID:        id,
		Board:     tictactoe.InitialState(),
		Moves:     []tictactoe.Action{},
		Mode:      mode,
		HumanMark: humanMark,
		Status:    StatusOngoing,
	}
}

// Turn - mark of the player to move, Empty once the match is over.
func (that *Match) Turn() tictactoe.Mark {
	if that.IsFinished() {
		return tictactoe.Empty
	}

	return tictactoe.Player(that.Board)
}

// IsHumanTurn - reports whether the next move belongs to the human seat.
func (that *Match) IsHumanTurn() bool {
	return that.Mode == WithBotMode && that.Turn() == that.HumanMark
}

// Apply - plays the action for the side to move and refreshes status and winner.
func (that *Match) Apply(action tictactoe.Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	next, err := tictactoe.Result(that.Board, action)
	if err != nil {
		return fmt.Errorf("could not apply move: %w", err)
	}

	that.Board = next
	that.Moves = append(that.Moves, action)
	that.UpdateMatchState()

	return nil
}

func (that *Match) UpdateMatchState() {
	if !tictactoe.Terminal(that.Board) {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	if winner := tictactoe.Winner(that.Board); winner != tictactoe.Empty {
		that.Winner = winner.String()
		return
	}

	that.Winner = PlayerTie
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}
