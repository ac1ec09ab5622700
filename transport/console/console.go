package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrBadInput = errors.New("expected two numbers: row col")

type line struct {
	text string
	err  error
}

// Session - a human against the engine in a terminal.
type Session struct {
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	human  tictactoe.Mark

	lines chan line
}

func NewSession(logger *slog.Logger, in io.Reader, out io.Writer, human tictactoe.Mark) *Session {
	return &Session{
		logger: logger.With("component", "console"),
		in:     in,
		out:    out,
		human:  human,
	}
}

// Play - runs the session until the game ends, input is exhausted or ctx is canceled.
// Returns the final board.
func (that *Session) Play(ctx context.Context) (tictactoe.Board, error) {
	board := tictactoe.InitialState()

	that.printf("You play %s. Enter moves as \"row col\" (0-2).\n", that.human)

	for !tictactoe.Terminal(board) {
		if err := ctx.Err(); err != nil {
			return board, err
		}

		var (
			next tictactoe.Board
			err  error
		)

		if tictactoe.Player(board) == that.human {
			that.render(board)
			next, err = that.humanTurn(ctx, board)
		} else {
			next, err = that.engineTurn(board)
		}

		if err != nil {
			return board, err
		}

		board = next
	}

	that.render(board)
	that.printOutcome(board)

	return board, nil
}

func (that *Session) humanTurn(ctx context.Context, board tictactoe.Board) (tictactoe.Board, error) {
	for {
		that.printf("%s> ", that.human)

		text, err := that.readLine(ctx)
		if err != nil {
			return board, err
		}

		action, err := parseAction(text)
		if err != nil {
			that.printf("%v\n", err)
			continue
		}

		next, err := tictactoe.Result(board, action)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.printf("%v\n", err)
			continue
		}

		if err != nil {
			return board, fmt.Errorf("could not apply move: %w", err)
		}

		return next, nil
	}
}

// readLine - waits for the next input line or for ctx to be canceled.
// The reader goroutine starts on first use and outlives a canceled session
// until the underlying reader returns.
func (that *Session) readLine(ctx context.Context) (string, error) {
	if that.lines == nil {
		that.lines = make(chan line)
		go that.scan()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (that *Session) scan() {
	defer close(that.lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- line{text: scanner.Text()}
	}

	if err := scanner.Err(); err != nil {
		that.lines <- line{err: fmt.Errorf("could not read move: %w", err)}
	}
}

func (that *Session) engineTurn(board tictactoe.Board) (tictactoe.Board, error) {
	action, ok := tictactoe.Minimax(board)
	if !ok {
		return board, apperror.ErrGameFinished
	}

	that.logger.Debug("engine move", "row", action.Row, "col", action.Col)
	that.printf("Engine plays %d %d\n", action.Row, action.Col)

	next, err := tictactoe.Result(board, action)
	if err != nil {
		return board, fmt.Errorf("engine failed to make turn: %w", err)
	}

	return next, nil
}

func parseAction(line string) (tictactoe.Action, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return tictactoe.Action{}, ErrBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return tictactoe.Action{}, ErrBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return tictactoe.Action{}, ErrBadInput
	}

	return tictactoe.Action{Row: row, Col: col}, nil
}

func (that *Session) render(board tictactoe.Board) {
	var sb strings.Builder
	for i, row := range board {
		if i > 0 {
			sb.WriteString("-+-+-\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte('|')
			}
			if cell == tictactoe.Empty {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.String())
			}
		}
		sb.WriteByte('\n')
	}

	that.printf("%s", sb.String())
}

func (that *Session) printOutcome(board tictactoe.Board) {
	switch tictactoe.Winner(board) {
	case that.human:
		that.printf("Game over: you win.\n")
	case tictactoe.Empty:
		that.printf("Game over: tie.\n")
	default:
		that.printf("Game over: engine wins.\n")
	}
}

func (that *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("could not write to console", "error", err)
	}
}
