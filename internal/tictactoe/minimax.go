package tictactoe

const (
	maxUtility = 1
	minUtility = -1
)

// Minimax - returns the optimal action for the player to move.
// ok is false when the board is terminal and there is nothing to play.
func Minimax(board Board) (Action, bool) {
	if Terminal(board) {
		return Action{}, false
	}

	if Player(board) == X {
		return bestAction(board, MinValue, maxUtility, func(candidate, best int) bool { return candidate > best })
	}

	return bestAction(board, MaxValue, minUtility, func(candidate, best int) bool { return candidate < best })
}

// bestAction - picks the first action whose value beats every earlier one,
// stopping as soon as the target utility is reached.
func bestAction(board Board, value func(Board) int, target int, better func(candidate, best int) bool) (Action, bool) {
	var (
		best     Action
		bestVal  int
		hasValue bool
	)

	for _, action := range Actions(board) {
		next, err := Result(board, action)
		if err != nil {
			continue
		}

		v := value(next)
		if v == target {
			return action, true
		}

		if !hasValue || better(v, bestVal) {
			best, bestVal, hasValue = action, v, true
		}
	}

	return best, hasValue
}

// MaxValue - value of the board when X is to move.
func MaxValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	best := minUtility - 1
	for _, action := range Actions(board) {
		next, err := Result(board, action)
		if err != nil {
			continue
		}

		best = max(best, MinValue(next))
		if best == maxUtility {
			break
		}
	}

	return best
}

// MinValue - value of the board when O is to move.
func MinValue(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	best := maxUtility + 1
	for _, action := range Actions(board) {
		next, err := Result(board, action)
		if err != nil {
			continue
		}

		best = min(best, MaxValue(next))
		if best == minUtility {
			break
		}
	}

	return best
}

// Evaluate - minimax value of the board from X's point of view.
func Evaluate(board Board) int {
	if Terminal(board) {
		return Utility(board)
	}

	if Player(board) == X {
		return MaxValue(board)
	}

	return MinValue(board)
}
