package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const Size = 3

// Mark - content of a single cell. X always moves first.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Board - value type, so every copy is independent of its parent.
type Board [Size][Size]Mark

var ErrInvalidBoard = errors.New("invalid board")

// Action - zero-based coordinates of the cell to mark.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

var lines = [8][3]Action{
	// rows
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	// columns
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	// diagonals
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// InitialState - returns the empty starting board.
func InitialState() Board {
	return Board{}
}

// BoardFromRows - builds a board from exactly Size rows of Size cells.
// X must have the same number of marks as O or exactly one more.
func BoardFromRows(rows [][]Mark) (Board, error) {
	var board Board

	if len(rows) != Size {
		return board, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}

	var xCount, oCount int
	for i, row := range rows {
		if len(row) != Size {
			return board, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidBoard, i, len(row), Size)
		}

		for j, cell := range row {
			switch cell {
			case X:
				xCount++
			case O:
				oCount++
			}
			board[i][j] = cell
		}
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return board, fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoard, xCount, oCount)
	}

	return board, nil
}

// Player - returns the mark of the player who has the next turn.
func Player(board Board) Mark {
	var xCount, oCount int
	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case X:
				xCount++
			case O:
				oCount++
			}
		}
	}

	if xCount == oCount {
		return X
	}

	return O
}

// Actions - returns all empty cells in row-major order.
func Actions(board Board) []Action {
	actions := make([]Action, 0, Size*Size)
	for i, row := range board {
		for j, cell := range row {
			if cell == Empty {
				actions = append(actions, Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// Result - returns the board that results from the current player marking the given cell.
func Result(board Board, action Action) (Board, error) {
	if action.Row < 0 || action.Row >= Size || action.Col < 0 || action.Col >= Size {
		return board, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, action)
	}

	if board[action.Row][action.Col] != Empty {
		return board, fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, action)
	}

	next := board
	next[action.Row][action.Col] = Player(board)

	return next, nil
}

// Winner - returns the mark that owns a complete line, or Empty.
func Winner(board Board) Mark {
	for _, line := range lines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// Terminal - reports whether the game is over.
func Terminal(board Board) bool {
	if Winner(board) != Empty {
		return true
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Utility - 1 if X has won, -1 if O has won, 0 otherwise.
func Utility(board Board) int {
	switch Winner(board) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}
